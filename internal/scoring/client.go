// Package scoring talks to the local Python scoring service. Every call
// degrades to a deterministic default payload on failure: the service is an
// enrichment, callers always receive a well-formed result.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/matheus/jobmatch/internal/config"
)

const (
	matchTimeout      = 60 * time.Second
	occupationTimeout = 120 * time.Second
	analysisTimeout   = 180 * time.Second

	weightMatch      = 0.7
	weightSimilarity = 0.3

	defaultTopK                = 5
	defaultThreshold           = 0.65
	defaultSkillsThreshold     = 0.75
	defaultAnalysisOccupations = 3
)

// MatchAnalysis is the free-text commentary attached to a profile match.
type MatchAnalysis struct {
	Strengths      string `json:"strengths"`
	Gaps           string `json:"gaps"`
	Recommendation string `json:"recommendation"`
}

// MatchResult scores a candidate skill set against a job's requirements.
type MatchResult struct {
	MatchScore      float64       `json:"match_score"`
	MatchPercentage string        `json:"match_percentage"`
	Level           string        `json:"level"`
	MatchedSkills   []string      `json:"matched_skills"`
	MatchedCount    int           `json:"matched_count"`
	MissingSkills   []string      `json:"missing_skills"`
	MissingCount    int           `json:"missing_count"`
	RequiredCount   int           `json:"required_count"`
	Analysis        MatchAnalysis `json:"analysis"`
}

// Occupation is one ranked occupation guess.
type Occupation struct {
	Titulo     string  `json:"titulo"`
	Codigo     string  `json:"codigo"`
	Score      float64 `json:"score"`
	Confidence string  `json:"confidence,omitempty"`
	Error      string  `json:"error,omitempty"`
}

type OccupationsResult struct {
	Status           string       `json:"status"`
	ProcessingTime   float64      `json:"processing_time"`
	OccupationsFound int          `json:"occupations_found"`
	Occupations      []Occupation `json:"occupations"`
}

type PrimaryOccupationResult struct {
	Status            string      `json:"status"`
	ProcessingTime    float64     `json:"processing_time"`
	PrimaryOccupation *Occupation `json:"primary_occupation,omitempty"`
}

// AnalyzedSkill is one skill the service recognized in the résumé.
type AnalyzedSkill struct {
	SkillName     string  `json:"matched_skill"`
	OriginalSkill string  `json:"original"`
	Score         float64 `json:"similarity_score"`
	Confidence    string  `json:"confidence,omitempty"`
}

type AnalysisResult struct {
	Status            string          `json:"status"`
	ResumeType        string          `json:"resume_type"`
	PrimaryOccupation *Occupation     `json:"primary_occupation,omitempty"`
	Skills            []AnalyzedSkill `json:"skills,omitempty"`
	TotalSkillsFound  *int            `json:"total_skills_found,omitempty"`
	SuccessfulMatches *int            `json:"successful_matches,omitempty"`
	Note              string          `json:"note,omitempty"`
	ProcessingTime    float64         `json:"processing_time"`
}

// Client posts JSON to the scoring service with per-endpoint timeouts.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.ScoringConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{},
	}
}

// MatchProfile scores candidate skills against job requirements. A failed or
// unreachable service yields the default "unavailable" result, never an
// error.
func (c *Client) MatchProfile(ctx context.Context, candidateSkills, jobRequirements []string) *MatchResult {
	payload := map[string]any{
		"candidate_skills":  candidateSkills,
		"job_requirements":  jobRequirements,
		"weight_match":      weightMatch,
		"weight_similarity": weightSimilarity,
	}
	var out MatchResult
	if err := c.post(ctx, "/api/v1/match-profile", payload, matchTimeout, &out); err != nil {
		log.Printf("[scoring] profile match failed: %v", err)
		return defaultMatchResult()
	}
	if out.MatchedSkills == nil {
		out.MatchedSkills = []string{}
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}
	if out.MatchPercentage == "" {
		out.MatchPercentage = "0%"
	}
	if out.Level == "" {
		out.Level = "DESCONHECIDO"
	}
	return &out
}

// InferOccupations ranks likely occupations for a résumé text. Blank text
// short-circuits to the error payload without a call.
func (c *Client) InferOccupations(ctx context.Context, resumeText string, topK int, threshold float64) *OccupationsResult {
	if strings.TrimSpace(resumeText) == "" {
		return &OccupationsResult{Status: "error", Occupations: []Occupation{}}
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	payload := map[string]any{
		"resume_text": strings.TrimSpace(resumeText),
		"top_k":       topK,
		"threshold":   threshold,
	}
	var out OccupationsResult
	if err := c.post(ctx, "/api/v1/infer-occupation", payload, occupationTimeout, &out); err != nil {
		log.Printf("[scoring] occupation inference failed: %v", err)
		return &OccupationsResult{Status: "error", Occupations: []Occupation{}}
	}
	if out.Occupations == nil {
		out.Occupations = []Occupation{}
	}
	out.Status = "success"
	out.OccupationsFound = len(out.Occupations)
	return &out
}

// InferPrimaryOccupation returns the single best occupation guess.
func (c *Client) InferPrimaryOccupation(ctx context.Context, resumeText string, threshold float64) *PrimaryOccupationResult {
	if strings.TrimSpace(resumeText) == "" {
		return &PrimaryOccupationResult{Status: "error"}
	}
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	payload := map[string]any{
		"resume_text": strings.TrimSpace(resumeText),
		"threshold":   threshold,
	}
	var out PrimaryOccupationResult
	if err := c.post(ctx, "/api/v1/infer-primary-occupation", payload, occupationTimeout, &out); err != nil {
		log.Printf("[scoring] primary occupation inference failed: %v", err)
		return &PrimaryOccupationResult{Status: "error"}
	}
	out.Status = "success"
	return &out
}

// AnalyzeResume runs the full analysis: primary occupation, résumé type and
// per-skill similarity scores.
func (c *Client) AnalyzeResume(ctx context.Context, resumeText string) *AnalysisResult {
	if strings.TrimSpace(resumeText) == "" {
		return &AnalysisResult{Status: "error", ResumeType: "unknown"}
	}
	payload := map[string]any{
		"resume_text":          strings.TrimSpace(resumeText),
		"threshold_occupation": defaultThreshold,
		"threshold_skills":     defaultSkillsThreshold,
		"top_k_occupations":    defaultAnalysisOccupations,
	}
	var out AnalysisResult
	if err := c.post(ctx, "/api/v1/analyze-resume", payload, analysisTimeout, &out); err != nil {
		log.Printf("[scoring] resume analysis failed: %v", err)
		return &AnalysisResult{Status: "error", ResumeType: "unknown"}
	}
	if out.ResumeType == "" {
		out.ResumeType = "unknown"
	}
	out.Status = "success"
	return &out
}

func (c *Client) post(ctx context.Context, path string, payload any, timeout time.Duration, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scoring service returned %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func defaultMatchResult() *MatchResult {
	return &MatchResult{
		MatchScore:      0,
		MatchPercentage: "0%",
		Level:           "ERRO",
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		Analysis: MatchAnalysis{
			Strengths:      "Não disponível",
			Gaps:           "Erro ao calcular",
			Recommendation: "Tente novamente",
		},
	}
}
