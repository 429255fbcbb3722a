package extraction

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/matheus/jobmatch/internal/config"
	"github.com/matheus/jobmatch/internal/hf"
)

const (
	maxPromptChars    = 1500
	skillPromptTokens = 120
)

// ModelClient is the slice of the inference API the pipeline needs.
type ModelClient interface {
	TokenClassification(ctx context.Context, model, text string) ([]hf.Token, error)
	Generate(ctx context.Context, model, prompt string, maxNewTokens int, temperature float64) (string, error)
}

// Result holds everything extracted from one résumé.
type Result struct {
	Skills    []string `json:"skills"`
	Locations []string `json:"locations"`
}

// Pipeline combines regex scanning, token classification and generative
// extraction into a single skills-and-locations pass over résumé text.
type Pipeline struct {
	models      ModelClient
	skillsModel string
	nerModel    string
	minScore    float64
}

func NewPipeline(models ModelClient, cfg config.HuggingFaceConfig) *Pipeline {
	return &Pipeline{
		models:      models,
		skillsModel: cfg.SkillsModel,
		nerModel:    cfg.NERModel,
		minScore:    cfg.MinScore,
	}
}

// Extract runs the full pipeline. The two model calls run concurrently and
// each failure degrades to an empty contribution, so the regex matches alone
// are always available. Blank input returns immediately without any network
// traffic.
func (p *Pipeline) Extract(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Skills: []string{}, Locations: []string{}}
	}

	regexSkills := matchPatterns(text)

	var generated, locations []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		generated = p.generateSkills(gctx, text)
		return nil
	})
	g.Go(func() error {
		locations = p.extractLocations(gctx, text)
		return nil
	})
	_ = g.Wait() // members recover their own failures

	return Result{
		Skills:    finalizeSkills(append(regexSkills, generated...)),
		Locations: finalizeLocations(locations),
	}
}

func (p *Pipeline) generateSkills(ctx context.Context, text string) []string {
	if p.skillsModel == "" {
		return nil
	}
	out, err := p.models.Generate(ctx, p.skillsModel, skillPrompt(text), skillPromptTokens, 0.3)
	if err != nil {
		log.Printf("[extraction] generative skill extraction failed: %v", err)
		return nil
	}
	return ParseSkillList(out)
}

func (p *Pipeline) extractLocations(ctx context.Context, text string) []string {
	if p.nerModel == "" {
		return nil
	}
	tokens, err := p.models.TokenClassification(ctx, p.nerModel, text)
	if err != nil {
		log.Printf("[extraction] token classification failed: %v", err)
		return nil
	}
	var locations []string
	for _, span := range MergeTokens(tokens, text) {
		if span.Score < p.minScore {
			continue
		}
		if _, ok := locationGroups[span.Group]; !ok {
			continue
		}
		if loc := NormalizeLocation(span.Text); loc != "" {
			locations = append(locations, loc)
		}
	}
	return locations
}

func skillPrompt(text string) string {
	runes := []rune(text)
	if len(runes) > maxPromptChars {
		text = string(runes[:maxPromptChars])
	}
	return fmt.Sprintf(
		"Extraia as habilidades profissionais do currículo abaixo. "+
			"Responda apenas com uma lista separada por vírgulas.\n\nCurrículo:\n%s\n\nHabilidades:",
		text,
	)
}

// finalizeSkills normalizes, filters and orders skill candidates. Ordering is
// longest-by-letters first so composite skills ("Spring Boot") outrank their
// fragments, with an alphabetical tiebreak for stable output.
func finalizeSkills(candidates []string) []string {
	skills := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		s := NormalizeSkill(c)
		if s == "" || !IsRelevantSkill(s) {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, s)
	}
	sort.SliceStable(skills, func(i, j int) bool {
		li, lj := letterCount(skills[i]), letterCount(skills[j])
		if li != lj {
			return li > lj
		}
		return skills[i] < skills[j]
	})
	return skills
}

func finalizeLocations(locations []string) []string {
	out := make([]string, 0, len(locations))
	seen := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		key := strings.ToLower(loc)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, loc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := len([]rune(out[i])), len([]rune(out[j]))
		if li != lj {
			return li > lj
		}
		return out[i] < out[j]
	})
	return out
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
