package response_models

// TravelGuide is the generation service's answer to a GuideRequest. It is
// treated as an immutable snapshot once decoded.
type TravelGuide struct {
	Destinations    []LocationDetail `json:"destinations"`
	Itinerary       []DayItinerary   `json:"itinerary"`
	Recommendations Recommendations  `json:"recommendations"`
	RouteInfo       *RouteInfo       `json:"route_info,omitempty"`
	TotalDays       int              `json:"total_days"`
}

type ImageInfo struct {
	URL          string  `json:"url"`
	AltText      string  `json:"alt_text"`
	Photographer *string `json:"photographer,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationDetail struct {
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Highlights       []string     `json:"highlights"`
	MainImage        *ImageInfo   `json:"main_image,omitempty"`
	AdditionalImages []ImageInfo  `json:"additional_images"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
}

type DayActivity struct {
	Time        string  `json:"time"` // "Morning", "Afternoon", ...
	Activity    string  `json:"activity"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Duration    *string `json:"duration,omitempty"`
}

type DayItinerary struct {
	DayNumber  int           `json:"day_number"`
	Date       *string       `json:"date,omitempty"`
	Title      string        `json:"title"`
	Activities []DayActivity `json:"activities"`
	Location   string        `json:"location"`
}

type Recommendation struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	PriceLevel     *string    `json:"price_level,omitempty"` // "$", "$$", "$$$"
	WhyRecommended string     `json:"why_recommended"`
	Image          *ImageInfo `json:"image,omitempty"`
}

// Recommendations always carries the same three categories.
type Recommendations struct {
	Sleep       []Recommendation `json:"sleep"`
	Eat         []Recommendation `json:"eat"`
	Curiosities []Recommendation `json:"curiosities"`
}

type Segment struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	DistanceKm     float64 `json:"distance_km"`
	EstimatedHours float64 `json:"estimated_hours"`
}

type RouteInfo struct {
	TotalDistanceKm float64   `json:"total_distance_km"`
	Segments        []Segment `json:"segments"`
}
