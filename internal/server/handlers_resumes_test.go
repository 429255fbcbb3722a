package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheus/jobmatch/internal/scoring"
)

func uploadFile(t *testing.T, handler http.Handler, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/skills", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestExtractSkillsRejectsNonPDF(t *testing.T) {
	s, _ := newTestServer()
	handler := testHandler(s)

	rec := uploadFile(t, handler, "file", "resume.txt", []byte("plain text resume"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestExtractSkillsRejectsEmptyUpload(t *testing.T) {
	s, _ := newTestServer()
	handler := testHandler(s)

	rec := uploadFile(t, handler, "file", "resume.pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractSkillsRejectsCorruptPDF(t *testing.T) {
	s, _ := newTestServer()
	handler := testHandler(s)

	// Right magic bytes, broken structure.
	rec := uploadFile(t, handler, "file", "resume.pdf", []byte("%PDF-1.4 garbage"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMatchJobs(t *testing.T) {
	s, _ := newTestServer()
	s.scoring = stubScoring{match: &scoring.MatchResult{
		MatchScore:      0.82,
		MatchPercentage: "82%",
		Level:           "ALTO",
		MatchedSkills:   []string{"Java"},
		MissingSkills:   []string{"Kubernetes"},
	}}
	handler := testHandler(s)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/resumes/match-jobs", MatchJobsRequest{
		CandidateSkills: []string{"Java"},
		JobRequirements: []string{"Java", "Kubernetes"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp scoring.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "82%", resp.MatchPercentage)
	assert.Equal(t, []string{"Kubernetes"}, resp.MissingSkills)
}

func TestMatchJobsValidation(t *testing.T) {
	s, _ := newTestServer()
	handler := testHandler(s)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/resumes/match-jobs", MatchJobsRequest{
		CandidateSkills: []string{"Java"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInferOccupations(t *testing.T) {
	s, _ := newTestServer()
	s.scoring = stubScoring{
		ranked: &scoring.OccupationsResult{
			Status:           "success",
			OccupationsFound: 1,
			Occupations:      []scoring.Occupation{{Titulo: "Desenvolvedor de Software", Score: 0.9}},
		},
		primary: &scoring.PrimaryOccupationResult{
			Status:            "success",
			PrimaryOccupation: &scoring.Occupation{Titulo: "Chef de Cozinha", Score: 0.88},
		},
	}
	handler := testHandler(s)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/resumes/infer-occupations",
		InferOccupationsRequest{ResumeText: "currículo"})
	require.Equal(t, http.StatusOK, rec.Code)
	var ranked scoring.OccupationsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranked))
	assert.Equal(t, 1, ranked.OccupationsFound)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/resumes/infer-occupations",
		InferOccupationsRequest{ResumeText: "currículo", Primary: true})
	require.Equal(t, http.StatusOK, rec.Code)
	var primary scoring.PrimaryOccupationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &primary))
	require.NotNil(t, primary.PrimaryOccupation)
	assert.Equal(t, "Chef de Cozinha", primary.PrimaryOccupation.Titulo)
}

func TestInferOccupationsValidation(t *testing.T) {
	s, _ := newTestServer()
	handler := testHandler(s)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/resumes/infer-occupations",
		InferOccupationsRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeResume(t *testing.T) {
	s, _ := newTestServer()
	s.scoring = stubScoring{full: &scoring.AnalysisResult{
		Status:     "success",
		ResumeType: "technical",
		Skills:     []scoring.AnalyzedSkill{{SkillName: "Java", Score: 0.97}},
	}}
	handler := testHandler(s)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/resumes/analyze",
		AnalyzeResumeRequest{ResumeText: "currículo completo"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp scoring.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "technical", resp.ResumeType)
	require.Len(t, resp.Skills, 1)
}
