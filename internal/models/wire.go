package models

// GenerateRequest is the JSON body of POST /generate. Image carries the
// photo as a data URL. Zero Duration and empty Resolution defer to the
// model's defaults.
type GenerateRequest struct {
	Image      string `json:"image"`
	FilterID   string `json:"filter_id"`
	Prompt     string `json:"prompt,omitempty"`
	Model      string `json:"model,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

// GenerateResponse is the success body of POST /generate. VideoURL may be
// relative to the serving host.
type GenerateResponse struct {
	VideoURL string `json:"video_url"`
	VideoID  string `json:"video_id"`
	Model    string `json:"model"`
}

// ErrorResponse is the error body returned for failed requests.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
}
