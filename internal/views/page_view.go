package views

import (
	"fmt"

	"travelguide/internal/planner"
)

const (
	SubmitLabel  = "Generate Travel Guide"
	LoadingLabel = "Generating Your Travel Guide..."
)

type DestinationSlotView struct {
	Index       int
	Value       string
	Placeholder string
	Removable   bool
}

type FormView struct {
	Slots       []DestinationSlotView
	Days        string
	Preferences string
	Notice      string
	Disabled    bool
	SubmitLabel string
}

type ScrollView struct {
	Target  string
	DelayMs int64
}

type PageView struct {
	Title          string
	State          planner.PageState
	Form           FormView
	Loading        bool
	ShowScrollHint bool
	Error          string
	Guide          *GuideView
	Scroll         *ScrollView
}

func BuildFormView(form *planner.TripForm, loading bool) FormView {
	fv := FormView{
		Slots:       make([]DestinationSlotView, 0, len(form.Destinations)),
		Days:        form.Days,
		Preferences: form.Preferences,
		Notice:      form.Notice,
		Disabled:    loading,
		SubmitLabel: SubmitLabel,
	}
	if loading {
		fv.SubmitLabel = LoadingLabel
	}
	for i, value := range form.Destinations {
		fv.Slots = append(fv.Slots, DestinationSlotView{
			Index:       i,
			Value:       value,
			Placeholder: fmt.Sprintf("Destination %d (e.g., Paris, France)", i+1),
			Removable:   len(form.Destinations) > 1,
		})
	}
	return fv
}

// BuildPage turns a session snapshot into everything the page template needs.
func BuildPage(session *planner.TripSession, scroll *planner.ScrollDirective) PageView {
	page := session.Page
	pv := PageView{
		Title:          "AI Travel Guide Generator",
		State:          page.State(),
		Form:           BuildFormView(session.Form, page.Loading),
		Loading:        page.Loading,
		ShowScrollHint: page.Guide == nil && !page.Loading,
		Error:          page.Error,
		Guide:          BuildGuideView(page.Guide),
	}
	if scroll != nil {
		pv.Scroll = &ScrollView{Target: scroll.Target, DelayMs: scroll.Delay.Milliseconds()}
	}
	return pv
}
