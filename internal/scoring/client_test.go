package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheus/jobmatch/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.ScoringConfig{BaseURL: baseURL})
}

func TestMatchProfileSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"match_score": 0.82,
			"match_percentage": "82%",
			"level": "ALTO",
			"matched_skills": ["Java", "SQL"],
			"matched_count": 2,
			"missing_skills": ["Kubernetes"],
			"missing_count": 1,
			"required_count": 3,
			"analysis": {"strengths": "boa base", "gaps": "infra", "recommendation": "estudar k8s"}
		}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).MatchProfile(context.Background(),
		[]string{"Java", "SQL"}, []string{"Java", "SQL", "Kubernetes"})

	assert.Equal(t, "/api/v1/match-profile", gotPath)
	assert.Equal(t, 0.7, gotBody["weight_match"])
	assert.Equal(t, 0.3, gotBody["weight_similarity"])

	assert.Equal(t, 0.82, res.MatchScore)
	assert.Equal(t, "82%", res.MatchPercentage)
	assert.Equal(t, "ALTO", res.Level)
	assert.Equal(t, []string{"Java", "SQL"}, res.MatchedSkills)
	assert.Equal(t, []string{"Kubernetes"}, res.MissingSkills)
	assert.Equal(t, 3, res.RequiredCount)
	assert.Equal(t, "estudar k8s", res.Analysis.Recommendation)
}

func TestMatchProfileDefaultsOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			res := newTestClient(srv.URL).MatchProfile(context.Background(), []string{"Java"}, []string{"Go"})

			assert.Equal(t, "ERRO", res.Level)
			assert.Equal(t, "0%", res.MatchPercentage)
			assert.Zero(t, res.MatchScore)
			assert.Empty(t, res.MatchedSkills)
			assert.Equal(t, "Não disponível", res.Analysis.Strengths)
		})
	}
}

func TestMatchProfileDefaultsWhenServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	res := newTestClient(srv.URL).MatchProfile(context.Background(), []string{"Java"}, []string{"Go"})
	assert.Equal(t, "ERRO", res.Level)
}

func TestInferOccupationsSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"occupations": [
				{"titulo": "Desenvolvedor de Software", "codigo": "2124-05", "score": 0.91, "confidence": "high"},
				{"titulo": "Analista de Sistemas", "codigo": "2124-10", "score": 0.7, "confidence": "medium"}
			],
			"processing_time": 1.4
		}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).InferOccupations(context.Background(), "Desenvolvedor Java há 5 anos", 0, 0)

	assert.Equal(t, "/api/v1/infer-occupation", gotPath)
	assert.Equal(t, float64(5), gotBody["top_k"])
	assert.Equal(t, 0.65, gotBody["threshold"])

	assert.Equal(t, "success", res.Status)
	assert.Equal(t, 2, res.OccupationsFound)
	require.Len(t, res.Occupations, 2)
	assert.Equal(t, "Desenvolvedor de Software", res.Occupations[0].Titulo)
	assert.Equal(t, 1.4, res.ProcessingTime)
}

func TestInferOccupationsBlankTextNoCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).InferOccupations(context.Background(), "   ", 5, 0.65)
	assert.False(t, called)
	assert.Equal(t, "error", res.Status)
	assert.Empty(t, res.Occupations)
}

func TestInferPrimaryOccupation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/infer-primary-occupation", r.URL.Path)
		w.Write([]byte(`{
			"primary_occupation": {"titulo": "Chef de Cozinha", "codigo": "2711-05", "score": 0.88, "confidence": "high"},
			"processing_time": 0.9
		}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).InferPrimaryOccupation(context.Background(), "Chef com 10 anos de experiência", 0.65)

	assert.Equal(t, "success", res.Status)
	require.NotNil(t, res.PrimaryOccupation)
	assert.Equal(t, "Chef de Cozinha", res.PrimaryOccupation.Titulo)
	assert.Equal(t, 0.88, res.PrimaryOccupation.Score)
}

func TestInferPrimaryOccupationErrorPayloadOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).InferPrimaryOccupation(context.Background(), "texto", 0.65)
	assert.Equal(t, "error", res.Status)
	assert.Nil(t, res.PrimaryOccupation)
}

func TestAnalyzeResume(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analyze-resume", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"resume_type": "technical",
			"primary_occupation": {"titulo": "Desenvolvedor Backend", "codigo": "2124-05", "score": 0.93},
			"skills": [{"matched_skill": "Java", "original": "java 8", "similarity_score": 0.97, "confidence": "high"}],
			"total_skills_found": 12,
			"successful_matches": 9,
			"processing_time": 3.2
		}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).AnalyzeResume(context.Background(), "Desenvolvedor backend com Java")

	assert.Equal(t, 0.65, gotBody["threshold_occupation"])
	assert.Equal(t, 0.75, gotBody["threshold_skills"])
	assert.Equal(t, float64(3), gotBody["top_k_occupations"])

	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "technical", res.ResumeType)
	require.NotNil(t, res.PrimaryOccupation)
	require.Len(t, res.Skills, 1)
	assert.Equal(t, "Java", res.Skills[0].SkillName)
	require.NotNil(t, res.TotalSkillsFound)
	assert.Equal(t, 12, *res.TotalSkillsFound)
}

func TestAnalyzeResumeErrorPayloadOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{{{`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).AnalyzeResume(context.Background(), "texto")
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "unknown", res.ResumeType)
}
