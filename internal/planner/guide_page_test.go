package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelguide/internal/models/response_models"
	"travelguide/pkg/utils"
)

func TestGuidePage_Lifecycle(t *testing.T) {
	p := &GuidePage{}
	assert.Equal(t, StateIdle, p.State())

	require.NoError(t, p.Begin(time.Now()))
	assert.Equal(t, StateLoading, p.State())

	guide := &response_models.TravelGuide{TotalDays: 3}
	p.Succeed(guide)
	assert.Equal(t, StateSuccess, p.State())
	assert.Same(t, guide, p.Guide)

	scroll := p.TakeScroll()
	require.NotNil(t, scroll)
	assert.Equal(t, ResultsAnchor, scroll.Target)
	assert.Equal(t, ResultsScrollDelay, scroll.Delay)
	assert.Nil(t, p.TakeScroll())

	p.NewSearch()
	assert.Equal(t, StateIdle, p.State())
	assert.Equal(t, TopAnchor, p.TakeScroll().Target)
}

func TestGuidePage_BeginClearsPreviousOutcome(t *testing.T) {
	p := &GuidePage{Error: "quota exceeded"}
	require.NoError(t, p.Begin(time.Now()))
	assert.Empty(t, p.Error)
	assert.Nil(t, p.Guide)

	p = &GuidePage{Guide: &response_models.TravelGuide{}}
	require.NoError(t, p.Begin(time.Now()))
	assert.Nil(t, p.Guide)
}

func TestGuidePage_BeginWhileLoading(t *testing.T) {
	p := &GuidePage{}
	require.NoError(t, p.Begin(time.Now()))
	assert.ErrorIs(t, p.Begin(time.Now()), utils.ErrGenerationInFlight)
}

func TestGuidePage_OwnsOnlyCurrentAttempt(t *testing.T) {
	p := &GuidePage{}
	assert.False(t, p.Owns(""))

	require.NoError(t, p.Begin(time.Now()))
	first := p.Attempt
	require.NotEmpty(t, first)
	assert.True(t, p.Owns(first))
	assert.False(t, p.Owns("someone-else"))

	p.Fail("quota exceeded")
	assert.False(t, p.Owns(first))
	assert.Empty(t, p.Attempt)

	require.NoError(t, p.Begin(time.Now()))
	assert.NotEqual(t, first, p.Attempt)
	assert.False(t, p.Owns(first))
}

func TestGuidePage_ExpireStale(t *testing.T) {
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	p := &GuidePage{}
	assert.False(t, p.ExpireStale(start.Add(time.Hour)), "idle pages never expire")

	require.NoError(t, p.Begin(start))
	assert.False(t, p.ExpireStale(start.Add(LoadingTimeout)))
	assert.Equal(t, StateLoading, p.State())

	assert.True(t, p.ExpireStale(start.Add(LoadingTimeout+time.Second)))
	assert.Equal(t, StateError, p.State())
	assert.Equal(t, StaleLoadingMessage, p.Error)
	assert.True(t, p.StartedAt.IsZero())

	require.NoError(t, p.Begin(start.Add(LoadingTimeout+2*time.Second)), "a new submission is accepted again")
}

func TestGuidePage_FailStoresMessage(t *testing.T) {
	p := &GuidePage{}
	require.NoError(t, p.Begin(time.Now()))
	p.Fail("quota exceeded")

	assert.Equal(t, StateError, p.State())
	assert.Equal(t, "quota exceeded", p.Error)
	assert.Nil(t, p.Guide)
	assert.Nil(t, p.TakeScroll())
}

func TestGuidePage_NewSearchAlwaysClears(t *testing.T) {
	pages := []*GuidePage{
		{},
		{Error: "nope"},
		{Guide: &response_models.TravelGuide{}},
	}
	for _, p := range pages {
		p.NewSearch()
		assert.Nil(t, p.Guide)
		assert.Empty(t, p.Error)
		assert.Equal(t, StateIdle, p.State())
	}
}

func TestTripSession_CloneIsIndependent(t *testing.T) {
	s := NewTripSession()
	s.Form.Destinations[0] = "Paris"
	s.Page.Scroll = &ScrollDirective{Target: TopAnchor}

	cp := s.Clone()
	cp.Form.Destinations[0] = "Rome"
	cp.Page.Scroll.Target = ResultsAnchor
	cp.Page.Loading = true

	assert.Equal(t, "Paris", s.Form.Destinations[0])
	assert.Equal(t, TopAnchor, s.Page.Scroll.Target)
	assert.False(t, s.Page.Loading)
}

func TestTripSession_Normalize(t *testing.T) {
	s := &TripSession{Form: &TripForm{}}
	s.Normalize()
	assert.Equal(t, []string{""}, s.Form.Destinations)
	assert.NotNil(t, s.Page)
}
