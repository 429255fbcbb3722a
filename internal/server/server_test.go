package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/matheus/jobmatch/internal/adzuna"
	"github.com/matheus/jobmatch/internal/config"
	"github.com/matheus/jobmatch/internal/db"
	"github.com/matheus/jobmatch/internal/extraction"
	"github.com/matheus/jobmatch/internal/scoring"
	"github.com/matheus/jobmatch/internal/suggestion"
)

// memoryUserStore is an in-memory UserStore for handler tests.
type memoryUserStore struct {
	users  map[int64]*db.User
	nextID int64
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[int64]*db.User{}, nextID: 1}
}

func (m *memoryUserStore) CreateUser(ctx context.Context, name, email, passwordHash, phone string) (int64, error) {
	id := m.nextID
	m.nextID++
	now := time.Now()
	m.users[id] = &db.User{
		ID: id, Name: name, Email: email, PasswordHash: passwordHash,
		Phone: phone, CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (m *memoryUserStore) GetUser(ctx context.Context, id int64) (*db.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (m *memoryUserStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memoryUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetUserByEmail(ctx, email)
	return u != nil, nil
}

func (m *memoryUserStore) ListUsers(ctx context.Context, page, pageSize int) ([]db.User, int, error) {
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	start := (page - 1) * pageSize
	var out []db.User
	for i := start; i < len(ids) && i < start+pageSize; i++ {
		out = append(out, *m.users[ids[i]])
	}
	return out, len(m.users), nil
}

func (m *memoryUserStore) UpdateUser(ctx context.Context, user *db.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return nil
	}
	user.UpdatedAt = time.Now()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memoryUserStore) DeleteUser(ctx context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

type stubExtractor struct {
	result extraction.Result
}

func (s stubExtractor) Extract(ctx context.Context, text string) extraction.Result {
	return s.result
}

type stubSuggesterService struct {
	title string
}

func (s stubSuggesterService) SuggestTitle(ctx context.Context, skills []string) string {
	return s.title
}

type stubSkillSearch struct {
	result *suggestion.SkillSearchResult
	err    error
}

func (s stubSkillSearch) SearchBySkills(ctx context.Context, req suggestion.SkillSearchRequest) (*suggestion.SkillSearchResult, error) {
	return s.result, s.err
}

type stubJobSearch struct {
	resp *adzuna.SearchResponse
	err  error
	last adzuna.SearchRequest
}

func (s *stubJobSearch) Search(ctx context.Context, req adzuna.SearchRequest) (*adzuna.SearchResponse, error) {
	s.last = req
	return s.resp, s.err
}

type stubScoring struct {
	match   *scoring.MatchResult
	ranked  *scoring.OccupationsResult
	primary *scoring.PrimaryOccupationResult
	full    *scoring.AnalysisResult
}

func (s stubScoring) MatchProfile(ctx context.Context, candidateSkills, jobRequirements []string) *scoring.MatchResult {
	return s.match
}

func (s stubScoring) InferOccupations(ctx context.Context, resumeText string, topK int, threshold float64) *scoring.OccupationsResult {
	return s.ranked
}

func (s stubScoring) InferPrimaryOccupation(ctx context.Context, resumeText string, threshold float64) *scoring.PrimaryOccupationResult {
	return s.primary
}

func (s stubScoring) AnalyzeResume(ctx context.Context, resumeText string) *scoring.AnalysisResult {
	return s.full
}

// newTestServer builds a Server on stub services, no external dependencies.
func newTestServer() (*Server, *memoryUserStore) {
	store := newMemoryUserStore()
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	s := &Server{
		userService: NewUserService(store, passwordConfig),
		jwtService:  NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1}),
		extractor:   stubExtractor{},
		suggester:   stubSuggesterService{},
		skillSearch: stubSkillSearch{},
		jobSearch:   &stubJobSearch{resp: &adzuna.SearchResponse{Results: []adzuna.Job{}}},
		scoring:     stubScoring{},
	}
	return s, store
}

func testHandler(s *Server) http.Handler {
	return s.routes()
}
