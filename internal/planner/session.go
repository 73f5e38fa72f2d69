package planner

// TripSession is everything one browser session owns: the form and the page.
type TripSession struct {
	Form *TripForm  `json:"form"`
	Page *GuidePage `json:"page"`
}

func NewTripSession() *TripSession {
	return &TripSession{
		Form: NewTripForm(),
		Page: &GuidePage{},
	}
}

// Clone copies the mutable parts of the session. The guide itself is an
// immutable snapshot and is shared.
func (s *TripSession) Clone() *TripSession {
	if s == nil {
		return NewTripSession()
	}
	return &TripSession{
		Form: s.Form.clone(),
		Page: s.Page.clone(),
	}
}

// Normalize repairs records that were stored partially.
func (s *TripSession) Normalize() {
	if s.Form == nil {
		s.Form = NewTripForm()
	}
	if len(s.Form.Destinations) == 0 {
		s.Form.Destinations = []string{""}
	}
	if s.Page == nil {
		s.Page = &GuidePage{}
	}
}
