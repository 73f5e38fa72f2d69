package planner

import (
	"time"

	"github.com/google/uuid"

	"travelguide/internal/models/response_models"
	"travelguide/pkg/utils"
)

type PageState string

const (
	StateIdle    PageState = "idle"
	StateLoading PageState = "loading"
	StateSuccess PageState = "success"
	StateError   PageState = "error"
)

const (
	ResultsAnchor      = "results"
	TopAnchor          = "top"
	ResultsScrollDelay = 300 * time.Millisecond
)

// LoadingTimeout bounds how long a page may stay in Loading. A generation
// whose outcome never got stored is turned into an error after this.
const LoadingTimeout = 10 * time.Minute

const StaleLoadingMessage = "Travel guide generation did not finish. Please try again."

// ScrollDirective asks the next rendered page to scroll to an anchor.
type ScrollDirective struct {
	Target string        `json:"target"`
	Delay  time.Duration `json:"delay"`
}

// GuidePage is the request lifecycle of one session's page. Guide and Error
// are never both set.
type GuidePage struct {
	Loading bool                         `json:"loading"`
	Guide   *response_models.TravelGuide `json:"guide,omitempty"`
	Error   string                       `json:"error,omitempty"`
	Scroll  *ScrollDirective             `json:"scroll,omitempty"`

	// Attempt identifies the running generation; only its outcome is kept.
	Attempt   string    `json:"attempt,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

func (p *GuidePage) State() PageState {
	switch {
	case p.Loading:
		return StateLoading
	case p.Error != "":
		return StateError
	case p.Guide != nil:
		return StateSuccess
	default:
		return StateIdle
	}
}

// Begin moves the page into Loading under a fresh attempt id and drops the
// previous outcome.
func (p *GuidePage) Begin(now time.Time) error {
	if p.Loading {
		return utils.ErrGenerationInFlight
	}
	p.Loading = true
	p.Attempt = uuid.NewString()
	p.StartedAt = now
	p.Guide = nil
	p.Error = ""
	p.Scroll = nil
	return nil
}

// Owns reports whether attempt is the generation the page is waiting for.
func (p *GuidePage) Owns(attempt string) bool {
	return p.Loading && attempt != "" && p.Attempt == attempt
}

// ExpireStale fails a Loading page that has waited longer than
// LoadingTimeout. It reports whether it did.
func (p *GuidePage) ExpireStale(now time.Time) bool {
	if !p.Loading || now.Sub(p.StartedAt) <= LoadingTimeout {
		return false
	}
	p.Fail(StaleLoadingMessage)
	return true
}

func (p *GuidePage) Succeed(guide *response_models.TravelGuide) {
	p.finish()
	p.Error = ""
	p.Guide = guide
	p.Scroll = &ScrollDirective{Target: ResultsAnchor, Delay: ResultsScrollDelay}
}

func (p *GuidePage) Fail(message string) {
	p.finish()
	p.Guide = nil
	p.Error = message
}

func (p *GuidePage) finish() {
	p.Loading = false
	p.Attempt = ""
	p.StartedAt = time.Time{}
}

// NewSearch clears guide and error whatever the current state is.
func (p *GuidePage) NewSearch() {
	p.Guide = nil
	p.Error = ""
	p.Scroll = &ScrollDirective{Target: TopAnchor}
}

// TakeScroll returns the pending scroll directive and forgets it.
func (p *GuidePage) TakeScroll() *ScrollDirective {
	s := p.Scroll
	p.Scroll = nil
	return s
}

func (p *GuidePage) clone() *GuidePage {
	if p == nil {
		return &GuidePage{}
	}
	cp := *p
	if p.Scroll != nil {
		s := *p.Scroll
		cp.Scroll = &s
	}
	return &cp
}
