package request_models

// GuideRequest is the body of POST /api/generate-guide on the generation service.
type GuideRequest struct {
	Destinations []string `json:"destinations"`
	Days         *int     `json:"days,omitempty"`
	Preferences  *string  `json:"preferences,omitempty"`
}
