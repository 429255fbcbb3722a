package suggestion

import (
	"context"
	"log"
	"strings"

	"github.com/matheus/jobmatch/internal/adzuna"
)

// defaultLocation scopes skill searches to Brazil when the caller gives no
// location. The titles and categories are Brazilian; a worldwide search
// would drown them.
const defaultLocation = "brasil"

// SkillSearchRequest is a cascade search keyed on extracted skills rather
// than a literal query string.
type SkillSearchRequest struct {
	Skills         []string `json:"skills" validate:"required,min=1,dive,required"`
	Location       string   `json:"location"`
	Category       string   `json:"category"`
	Page           int      `json:"page"`
	ResultsPerPage int      `json:"results_per_page"`
}

// SkillSearchResult carries the listings plus the query the winning attempt
// actually used, so callers can show what was searched for.
type SkillSearchResult struct {
	SuggestedTitle string       `json:"suggested_title"`
	Category       string       `json:"category,omitempty"`
	QueryUsed      string       `json:"query_used"`
	Jobs           []adzuna.Job `json:"jobs"`
	Count          int          `json:"count"`
	Mean           float64      `json:"mean,omitempty"`
}

// Service wires title suggestion, category inference and the provider search
// into one skills-to-listings operation.
type Service struct {
	suggester *Suggester
	searcher  adzuna.Searcher
}

func NewService(suggester *Suggester, searcher adzuna.Searcher) *Service {
	return &Service{suggester: suggester, searcher: searcher}
}

// SearchBySkills suggests a title, infers a category when none was given and
// searches, broadening the query on zero results: first the category is
// cleared, then the title narrows to the first two skills, then to the first
// alone. The cascade stops at the first non-empty attempt; transport errors
// propagate immediately. The provider is keyword-sensitive, so any result
// beats none.
func (s *Service) SearchBySkills(ctx context.Context, req SkillSearchRequest) (*SkillSearchResult, error) {
	title := s.suggester.SuggestTitle(ctx, req.Skills)
	if title == "" && len(req.Skills) > 0 {
		title = req.Skills[0]
	}
	category := req.Category
	if category == "" {
		category = InferCategory(title, req.Skills)
	}
	location := req.Location
	if location == "" {
		location = defaultLocation
	}

	attempts := []adzuna.SearchRequest{{
		What:           title,
		Where:          location,
		Category:       category,
		Page:           req.Page,
		ResultsPerPage: req.ResultsPerPage,
	}}
	if category != "" {
		next := attempts[0]
		next.Category = ""
		attempts = append(attempts, next)
	}
	if len(req.Skills) >= 2 {
		next := attempts[0]
		next.What = strings.Join(req.Skills[:2], " ")
		next.Category = ""
		attempts = append(attempts, next)
	}
	if len(req.Skills) >= 1 && req.Skills[0] != title {
		next := attempts[0]
		next.What = req.Skills[0]
		next.Category = ""
		attempts = append(attempts, next)
	}

	var last *adzuna.SearchResponse
	var used adzuna.SearchRequest
	for i, attempt := range attempts {
		resp, err := s.searcher.Search(ctx, attempt)
		if err != nil {
			return nil, err
		}
		last, used = resp, attempt
		if len(resp.Results) > 0 {
			break
		}
		if i < len(attempts)-1 {
			log.Printf("[suggestion] no results for %q (category=%q), broadening", attempt.What, attempt.Category)
		}
	}

	return &SkillSearchResult{
		SuggestedTitle: title,
		Category:       used.Category,
		QueryUsed:      used.What,
		Jobs:           last.Results,
		Count:          last.Count,
		Mean:           last.Mean,
	}, nil
}
