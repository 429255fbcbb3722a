package server

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Link is a HATEOAS navigation link attached to API resources.
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

// CreateUserRequest represents the request to create a new user.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateUserRequest represents a partial user update. Empty fields keep
// their current values.
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email,max=150"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// UserResponse is the user representation returned by the API, password
// hash excluded.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Links     []Link    `json:"links,omitempty"`
}

// UserListResponse is a paginated user listing.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int            `json:"total_count"`
	TotalPages int            `json:"total_pages"`
	Links      []Link         `json:"links,omitempty"`
}

// LoginResponse carries the authenticated user and a bearer token.
type LoginResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// JobSearchRequest is the POST body for a direct provider search.
type JobSearchRequest struct {
	What           string `json:"what" validate:"required,min=1"`
	Where          string `json:"where,omitempty"`
	Category       string `json:"category,omitempty"`
	Page           int    `json:"page,omitempty" validate:"omitempty,min=1"`
	ResultsPerPage int    `json:"results_per_page,omitempty" validate:"omitempty,min=1,max=50"`
}

func (r *JobSearchRequest) Validate() error {
	return validate.Struct(r)
}

// SuggestRequest asks for a job title from extracted skills.
type SuggestRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,required"`
}

func (r *SuggestRequest) Validate() error {
	return validate.Struct(r)
}

// SuggestResponse returns at most one suggested title.
type SuggestResponse struct {
	Titles []string `json:"titles"`
}

// MatchJobsRequest scores candidate skills against a job's requirements.
type MatchJobsRequest struct {
	CandidateSkills []string `json:"candidate_skills" validate:"required,min=1,dive,required"`
	JobRequirements []string `json:"job_requirements" validate:"required,min=1,dive,required"`
}

func (r *MatchJobsRequest) Validate() error {
	return validate.Struct(r)
}

// InferOccupationsRequest asks the scoring service to rank occupations for a
// résumé text.
type InferOccupationsRequest struct {
	ResumeText string  `json:"resume_text" validate:"required,min=1"`
	TopK       int     `json:"top_k,omitempty" validate:"omitempty,min=1,max=20"`
	Threshold  float64 `json:"threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	Primary    bool    `json:"primary,omitempty"`
}

func (r *InferOccupationsRequest) Validate() error {
	return validate.Struct(r)
}

// AnalyzeResumeRequest asks for the full scoring-service analysis.
type AnalyzeResumeRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=1"`
}

func (r *AnalyzeResumeRequest) Validate() error {
	return validate.Struct(r)
}
