package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/matheus/jobmatch/internal/ingestion"
)

const maxResumeSize = 5 << 20 // 5 MiB

var pdfMagic = []byte("%PDF-")

// handleExtractSkills accepts a PDF upload and runs the extraction pipeline
// over its text. The file arrives either as a multipart "file" field or as a
// raw application/pdf body.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)

	data, err := readUpload(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	if len(data) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Empty upload")
		return
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		s.errorResponse(w, http.StatusUnsupportedMediaType, "Only PDF files are supported")
		return
	}

	text, err := ingestion.ExtractText(data)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Could not extract text from PDF")
		return
	}

	result := s.extractor.Extract(r.Context(), text)
	s.jsonResponse(w, http.StatusOK, result)
}

func readUpload(r *http.Request) ([]byte, error) {
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(r.Body)
}

// handleMatchJobs proxies a profile match to the scoring service.
func (s *Server) handleMatchJobs(w http.ResponseWriter, r *http.Request) {
	var req MatchJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	s.jsonResponse(w, http.StatusOK,
		s.scoring.MatchProfile(r.Context(), req.CandidateSkills, req.JobRequirements))
}

// handleInferOccupations ranks occupations for a résumé text, or returns only
// the primary one when requested.
func (s *Server) handleInferOccupations(w http.ResponseWriter, r *http.Request) {
	var req InferOccupationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if req.Primary {
		s.jsonResponse(w, http.StatusOK,
			s.scoring.InferPrimaryOccupation(r.Context(), req.ResumeText, req.Threshold))
		return
	}
	s.jsonResponse(w, http.StatusOK,
		s.scoring.InferOccupations(r.Context(), req.ResumeText, req.TopK, req.Threshold))
}

// handleAnalyzeResume runs the full scoring-service analysis.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, s.scoring.AnalyzeResume(r.Context(), req.ResumeText))
}
