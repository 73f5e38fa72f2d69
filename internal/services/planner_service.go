package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"travelguide/internal/models/request_models"
	"travelguide/internal/models/response_models"
	"travelguide/internal/planner"
	"travelguide/internal/repositories"
	"travelguide/pkg/utils"
)

const (
	outcomeWriteAttempts = 3
	outcomeWriteTimeout  = 5 * time.Second
	outcomeRetryDelay    = 200 * time.Millisecond
)

type PlannerServiceInterface interface {
	// OpenPage returns the session to render together with its pending
	// scroll directive, which is consumed by this call.
	OpenPage(ctx context.Context, sessionID string) (*planner.TripSession, *planner.ScrollDirective, error)
	AddDestination(ctx context.Context, sessionID string, input request_models.TripFormInput) error
	RemoveDestination(ctx context.Context, sessionID string, input request_models.TripFormInput, index int) error
	Generate(ctx context.Context, sessionID string, input request_models.TripFormInput) error
	NewSearch(ctx context.Context, sessionID string) error
	CheckHealth(ctx context.Context) (*response_models.HealthStatus, error)
	// Wait blocks until every generation started so far has stored its
	// outcome, or ctx is done.
	Wait(ctx context.Context) error
}

type PlannerService struct {
	sessions repositories.SessionRepository
	client   GuideClientInterface
	logger   *zap.Logger
	now      func() time.Time
	inflight sync.WaitGroup
}

func NewPlannerService(sessions repositories.SessionRepository, client GuideClientInterface, logger *zap.Logger) PlannerServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		sessions: sessions,
		client:   client,
		logger:   logger.Named("PlannerService"),
		now:      time.Now,
	}
}

// expireStale runs inside every session update so a page whose generation
// outcome was lost leaves Loading on the next visit.
func (p *PlannerService) expireStale(sessionID string, s *planner.TripSession) {
	started := s.Page.StartedAt
	if s.Page.ExpireStale(p.now()) {
		guideGenerationsTotal.WithLabelValues("expired").Inc()
		p.logger.Warn("Generation never completed, page reset to error",
			zap.String("session_id", sessionID),
			zap.Time("started_at", started),
		)
	}
}

func (p *PlannerService) OpenPage(ctx context.Context, sessionID string) (*planner.TripSession, *planner.ScrollDirective, error) {
	var scroll *planner.ScrollDirective
	session, err := p.sessions.Update(ctx, sessionID, func(s *planner.TripSession) error {
		p.expireStale(sessionID, s)
		scroll = s.Page.TakeScroll()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return session, scroll, nil
}

func (p *PlannerService) AddDestination(ctx context.Context, sessionID string, input request_models.TripFormInput) error {
	_, err := p.sessions.Update(ctx, sessionID, func(s *planner.TripSession) error {
		p.expireStale(sessionID, s)
		if s.Page.Loading {
			return utils.ErrGenerationInFlight
		}
		s.Form.Load(input)
		s.Form.AddDestination()
		return nil
	})
	return err
}

// RemoveDestination keeps the posted values even when the slot cannot be
// removed; the refusal is returned after they are stored.
func (p *PlannerService) RemoveDestination(ctx context.Context, sessionID string, input request_models.TripFormInput, index int) error {
	var removeErr error
	_, err := p.sessions.Update(ctx, sessionID, func(s *planner.TripSession) error {
		p.expireStale(sessionID, s)
		if s.Page.Loading {
			return utils.ErrGenerationInFlight
		}
		s.Form.Load(input)
		removeErr = s.Form.RemoveDestination(index)
		return nil
	})
	if err != nil {
		return err
	}
	return removeErr
}

// Generate submits the session's form. When it validates, the page is
// switched to Loading and the single call to the generation service runs in
// the background; its outcome is stored on the session when it arrives.
// Cancellation of ctx does not abort the call.
func (p *PlannerService) Generate(ctx context.Context, sessionID string, input request_models.TripFormInput) error {
	var (
		req      request_models.GuideRequest
		attempt  string
		rejected bool
	)

	_, err := p.sessions.Update(ctx, sessionID, func(s *planner.TripSession) error {
		rejected = false
		p.expireStale(sessionID, s)
		if !s.Page.Loading {
			s.Form.Load(input)
		}
		err := s.Form.Submit(s.Page.Loading, func(destinations []string, days *int, preferences *string) error {
			if err := s.Page.Begin(p.now()); err != nil {
				return err
			}
			attempt = s.Page.Attempt
			req = planner.BuildGuideRequest(destinations, days, preferences)
			return nil
		})
		if errors.Is(err, utils.ErrNoDestinations) {
			// keep the notice on the form
			rejected = true
			return nil
		}
		return err
	})
	if errors.Is(err, utils.ErrGenerationInFlight) {
		formRejectionsTotal.WithLabelValues("in_flight").Inc()
		return err
	}
	if err != nil {
		return err
	}
	if rejected {
		formRejectionsTotal.WithLabelValues("no_destinations").Inc()
		return utils.ErrNoDestinations
	}

	callCtx := context.WithoutCancel(ctx)
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		p.complete(callCtx, sessionID, attempt, req)
	}()
	return nil
}

func (p *PlannerService) complete(ctx context.Context, sessionID, attempt string, req request_models.GuideRequest) {
	start := time.Now()
	guide, callErr := p.client.GenerateGuide(ctx, req)
	guideGenerationDuration.Observe(time.Since(start).Seconds())

	if callErr != nil {
		guideGenerationsTotal.WithLabelValues("error").Inc()
		p.logger.Error("Error generating guide",
			zap.String("session_id", sessionID),
			zap.Strings("destinations", req.Destinations),
			zap.Error(callErr),
		)
	} else {
		guideGenerationsTotal.WithLabelValues("success").Inc()
		p.logger.Info("Guide generated",
			zap.String("session_id", sessionID),
			zap.Int("destinations", len(guide.Destinations)),
			zap.Int("itinerary_days", len(guide.Itinerary)),
			zap.Duration("took", time.Since(start)),
		)
	}

	if err := p.storeOutcome(ctx, sessionID, attempt, guide, callErr); err != nil {
		// the page leaves Loading through expireStale
		p.logger.Error("Failed to store generation outcome",
			zap.String("session_id", sessionID),
			zap.String("attempt", attempt),
			zap.Error(err),
		)
	}
}

// storeOutcome writes the result of attempt, retrying a few times with a
// bounded context per write. A page that moved on to another attempt, or was
// already expired, is left alone.
func (p *PlannerService) storeOutcome(ctx context.Context, sessionID, attempt string, guide *response_models.TravelGuide, callErr error) error {
	apply := func(s *planner.TripSession) error {
		if !s.Page.Owns(attempt) {
			return nil
		}
		if callErr != nil {
			s.Page.Fail(ErrorMessage(callErr))
		} else {
			s.Page.Succeed(guide)
		}
		return nil
	}

	var err error
	for i := 0; i < outcomeWriteAttempts; i++ {
		if i > 0 {
			time.Sleep(time.Duration(i) * outcomeRetryDelay)
		}
		writeCtx, cancel := context.WithTimeout(ctx, outcomeWriteTimeout)
		_, err = p.sessions.Update(writeCtx, sessionID, apply)
		cancel()
		if err == nil {
			return nil
		}
		p.logger.Warn("Storing generation outcome failed",
			zap.String("session_id", sessionID),
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
	}
	return err
}

func (p *PlannerService) NewSearch(ctx context.Context, sessionID string) error {
	_, err := p.sessions.Update(ctx, sessionID, func(s *planner.TripSession) error {
		p.expireStale(sessionID, s)
		s.Page.NewSearch()
		return nil
	})
	return err
}

func (p *PlannerService) CheckHealth(ctx context.Context) (*response_models.HealthStatus, error) {
	status, err := p.client.CheckHealth(ctx)
	if err != nil {
		healthChecksTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	healthChecksTotal.WithLabelValues("ok").Inc()
	return status, nil
}

func (p *PlannerService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
