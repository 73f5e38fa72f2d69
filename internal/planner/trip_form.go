package planner

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"travelguide/internal/models/request_models"
	"travelguide/pkg/utils"
)

const NoticeNoDestinations = "Please enter at least one destination"

// GenerateFunc receives a validated submission. days and preferences are nil
// when the user left them unspecified.
type GenerateFunc func(destinations []string, days *int, preferences *string) error

// TripForm is the state behind the destination form.
type TripForm struct {
	Destinations []string `json:"destinations"`
	Days         string   `json:"days"`
	Preferences  string   `json:"preferences"`

	// Notice is a one-line message for the user, cleared by the next action.
	Notice string `json:"notice,omitempty"`
}

func NewTripForm() *TripForm {
	return &TripForm{Destinations: []string{""}}
}

func (f *TripForm) AddDestination() {
	f.Notice = ""
	f.Destinations = append(f.Destinations, "")
}

func (f *TripForm) RemoveDestination(index int) error {
	f.Notice = ""
	if index < 0 || index >= len(f.Destinations) {
		return fmt.Errorf("remove slot %d of %d: %w", index, len(f.Destinations), utils.ErrInvalidDestinationIndex)
	}
	if len(f.Destinations) <= 1 {
		return utils.ErrLastDestination
	}
	f.Destinations = slices.Delete(f.Destinations, index, index+1)
	return nil
}

func (f *TripForm) UpdateDestination(index int, value string) error {
	if index < 0 || index >= len(f.Destinations) {
		return fmt.Errorf("update slot %d of %d: %w", index, len(f.Destinations), utils.ErrInvalidDestinationIndex)
	}
	f.Destinations[index] = value
	return nil
}

func (f *TripForm) SetDays(value string) {
	f.Days = value
}

func (f *TripForm) SetPreferences(value string) {
	f.Preferences = value
}

// Load replaces the form fields with what the browser posted. The slot count
// follows the posted list but never drops below one.
func (f *TripForm) Load(input request_models.TripFormInput) {
	f.Notice = ""
	f.Destinations = make([]string, max(1, len(input.Destinations)))
	for i, value := range input.Destinations {
		_ = f.UpdateDestination(i, value)
	}
	f.SetDays(input.Days)
	f.SetPreferences(input.Preferences)
}

// Submit validates the form and hands the cleaned values to onGenerate.
// While loading nothing is submitted. When no destination is left after
// dropping blank slots the form gets a notice and ErrNoDestinations is
// returned without calling onGenerate.
func (f *TripForm) Submit(loading bool, onGenerate GenerateFunc) error {
	if loading {
		return utils.ErrGenerationInFlight
	}
	f.Notice = ""

	destinations := ValidDestinations(f.Destinations)
	if len(destinations) == 0 {
		f.Notice = NoticeNoDestinations
		return utils.ErrNoDestinations
	}

	return onGenerate(destinations, ParseDays(f.Days), optionalText(f.Preferences))
}

// ValidDestinations trims every slot and drops the blank ones, keeping order.
func ValidDestinations(slots []string) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseDays returns nil for blank or non-numeric input. Range checks are
// left to the generation service.
func ParseDays(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// BuildGuideRequest assembles the wire request from a validated submission.
func BuildGuideRequest(destinations []string, days *int, preferences *string) request_models.GuideRequest {
	return request_models.GuideRequest{
		Destinations: destinations,
		Days:         days,
		Preferences:  preferences,
	}
}

func optionalText(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func (f *TripForm) clone() *TripForm {
	if f == nil {
		return NewTripForm()
	}
	cp := *f
	cp.Destinations = slices.Clone(f.Destinations)
	return &cp
}
