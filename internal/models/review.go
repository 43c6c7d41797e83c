package models

// ReviewRequest is the payload sent to the code review endpoint.
type ReviewRequest struct {
	Code      string `json:"code"`
	Filename  string `json:"filename,omitempty"`
	Framework string `json:"framework,omitempty"`
	Context   string `json:"context,omitempty"`
}

// ReviewResponse is the success envelope of the review endpoint.
type ReviewResponse struct {
	Success bool   `json:"success"`
	Report  string `json:"report"`
}

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
