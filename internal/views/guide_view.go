package views

import (
	"fmt"
	"strconv"

	"travelguide/internal/models/response_models"
)

// View models are plain values built from a TravelGuide. Builders never
// modify their input and return the same structure for the same guide.

type ImageView struct {
	URL          string
	Alt          string
	Photographer string
}

type SegmentRow struct {
	Number         int
	From           string
	To             string
	DistanceKm     string
	EstimatedHours string
}

type RouteView struct {
	TotalDistanceKm string
	Summary         string
	Rows            []SegmentRow
}

type LocationCardView struct {
	Name        string
	Description string
	Hero        *ImageView
	Highlights  []string
	Gallery     []ImageView
}

type ActivityView struct {
	Time        string
	Name        string
	Duration    string
	Description string
	Location    string
}

type DayView struct {
	Key        string
	Number     int
	Title      string
	Date       string
	Location   string
	Activities []ActivityView
}

type ItineraryView struct {
	Days []DayView
}

type RecommendationItemView struct {
	Name           string
	Description    string
	PriceLevel     string
	WhyRecommended string
	Image          *ImageView
}

type RecommendationSectionView struct {
	Key   string
	Title string
	Items []RecommendationItemView
}

type GuideView struct {
	Route           *RouteView
	Locations       []LocationCardView
	Itinerary       *ItineraryView
	Recommendations []RecommendationSectionView
}

// BuildGuideView composes every renderer for one guide.
func BuildGuideView(guide *response_models.TravelGuide) *GuideView {
	if guide == nil {
		return nil
	}
	return &GuideView{
		Route:           BuildRouteView(guide),
		Locations:       BuildLocationCards(guide.Destinations),
		Itinerary:       BuildItineraryView(guide.Itinerary),
		Recommendations: BuildRecommendationSections(guide.Recommendations),
	}
}

// BuildRouteView returns nil unless the guide has at least one segment.
func BuildRouteView(guide *response_models.TravelGuide) *RouteView {
	if guide == nil || guide.RouteInfo == nil || len(guide.RouteInfo.Segments) == 0 {
		return nil
	}

	rows := make([]SegmentRow, 0, len(guide.RouteInfo.Segments))
	for i, seg := range guide.RouteInfo.Segments {
		rows = append(rows, SegmentRow{
			Number:         i + 1,
			From:           seg.From,
			To:             seg.To,
			DistanceKm:     formatNumber(seg.DistanceKm),
			EstimatedHours: formatNumber(seg.EstimatedHours),
		})
	}

	return &RouteView{
		TotalDistanceKm: formatNumber(guide.RouteInfo.TotalDistanceKm),
		Summary: fmt.Sprintf("Traveling across %d %s over %d %s",
			len(guide.Destinations), plural(len(guide.Destinations), "destination"),
			guide.TotalDays, plural(guide.TotalDays, "day")),
		Rows: rows,
	}
}

func BuildLocationCards(destinations []response_models.LocationDetail) []LocationCardView {
	cards := make([]LocationCardView, 0, len(destinations))
	for _, loc := range destinations {
		card := LocationCardView{
			Name:        loc.Name,
			Description: loc.Description,
			Hero:        buildImage(loc.MainImage),
			Highlights:  append([]string(nil), loc.Highlights...),
			Gallery:     make([]ImageView, 0, len(loc.AdditionalImages)),
		}
		for i := range loc.AdditionalImages {
			card.Gallery = append(card.Gallery, *buildImage(&loc.AdditionalImages[i]))
		}
		cards = append(cards, card)
	}
	return cards
}

// BuildItineraryView returns nil for an empty itinerary so the page can
// leave the section out.
func BuildItineraryView(itinerary []response_models.DayItinerary) *ItineraryView {
	if len(itinerary) == 0 {
		return nil
	}

	days := make([]DayView, 0, len(itinerary))
	for _, day := range itinerary {
		dv := DayView{
			Key:        "day-" + strconv.Itoa(day.DayNumber),
			Number:     day.DayNumber,
			Title:      day.Title,
			Date:       deref(day.Date),
			Location:   day.Location,
			Activities: make([]ActivityView, 0, len(day.Activities)),
		}
		for _, act := range day.Activities {
			dv.Activities = append(dv.Activities, ActivityView{
				Time:        act.Time,
				Name:        act.Activity,
				Duration:    deref(act.Duration),
				Description: act.Description,
				Location:    act.Location,
			})
		}
		days = append(days, dv)
	}
	return &ItineraryView{Days: days}
}

// BuildRecommendationSections always yields sleep, eat and curiosities in
// that order, empty or not.
func BuildRecommendationSections(recs response_models.Recommendations) []RecommendationSectionView {
	return []RecommendationSectionView{
		{Key: "sleep", Title: "Where to Stay", Items: buildRecommendationItems(recs.Sleep)},
		{Key: "eat", Title: "Where to Eat", Items: buildRecommendationItems(recs.Eat)},
		{Key: "curiosities", Title: "Local Curiosities", Items: buildRecommendationItems(recs.Curiosities)},
	}
}

func buildRecommendationItems(recs []response_models.Recommendation) []RecommendationItemView {
	items := make([]RecommendationItemView, 0, len(recs))
	for _, r := range recs {
		items = append(items, RecommendationItemView{
			Name:           r.Name,
			Description:    r.Description,
			PriceLevel:     deref(r.PriceLevel),
			WhyRecommended: r.WhyRecommended,
			Image:          buildImage(r.Image),
		})
	}
	return items
}

func buildImage(img *response_models.ImageInfo) *ImageView {
	if img == nil {
		return nil
	}
	return &ImageView{
		URL:          img.URL,
		Alt:          img.AltText,
		Photographer: deref(img.Photographer),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func plural(n int, word string) string {
	if n > 1 {
		return word + "s"
	}
	return word
}

// formatNumber prints 12 as "12" and 12.5 as "12.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
