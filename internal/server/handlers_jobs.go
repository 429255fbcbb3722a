package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matheus/jobmatch/internal/adzuna"
	"github.com/matheus/jobmatch/internal/suggestion"
)

// handleSearchJobsQuery services GET searches with query parameters.
func (s *Server) handleSearchJobsQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := JobSearchRequest{
		What:     q.Get("what"),
		Where:    q.Get("where"),
		Category: q.Get("category"),
	}
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.ResultsPerPage, _ = strconv.Atoi(q.Get("results_per_page"))

	s.searchJobs(w, r, req)
}

// handleSearchJobs services POST searches with a JSON body.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	var req JobSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.searchJobs(w, r, req)
}

func (s *Server) searchJobs(w http.ResponseWriter, r *http.Request, req JobSearchRequest) {
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resp, err := s.jobSearch.Search(r.Context(), adzuna.SearchRequest{
		What:           req.What,
		Where:          req.Where,
		Category:       req.Category,
		Page:           req.Page,
		ResultsPerPage: req.ResultsPerPage,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleSearchBySkills runs the full suggest-then-search cascade.
func (s *Server) handleSearchBySkills(w http.ResponseWriter, r *http.Request) {
	var req suggestion.SkillSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.skillSearch.SearchBySkills(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSuggestTitle returns at most one suggested title for a skill list.
func (s *Server) handleSuggestTitle(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	titles := []string{}
	if title := s.suggester.SuggestTitle(r.Context(), req.Skills); title != "" {
		titles = append(titles, title)
	}
	s.jsonResponse(w, http.StatusOK, SuggestResponse{Titles: titles})
}
