package request_models

// TripFormInput is what the browser posts from the trip form. Disabled inputs
// are not posted, so every field may be missing.
type TripFormInput struct {
	Destinations []string `form:"destinations"`
	Days         string   `form:"days"`
	Preferences  string   `form:"preferences"`
}
