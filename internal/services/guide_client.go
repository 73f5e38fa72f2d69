package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"travelguide/internal/models/request_models"
	"travelguide/internal/models/response_models"
	"travelguide/pkg/utils"
)

const (
	GenerateGuidePath = "/api/generate-guide"
	HealthPath        = "/api/health"

	DefaultGenerateErrorMessage = "Failed to generate travel guide"
)

// GuideClientInterface is the contract with the external generation service.
// Each call performs exactly one HTTP round trip: no retries, no caching.
type GuideClientInterface interface {
	GenerateGuide(ctx context.Context, req request_models.GuideRequest) (*response_models.TravelGuide, error)
	CheckHealth(ctx context.Context) (*response_models.HealthStatus, error)
}

// GuideAPIError is a non-2xx answer from the generation service. Its message
// is the service's "detail" text when it sent one.
type GuideAPIError struct {
	StatusCode int
	Detail     string
}

func (e *GuideAPIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return DefaultGenerateErrorMessage
}

func (e *GuideAPIError) Unwrap() error {
	return utils.ErrGuideService
}

type GuideAPIClient struct {
	BaseURL string
	HTTP    *http.Client
	logger  *zap.Logger
}

// NewGuideAPIClient builds a client for baseURL. The HTTP client has no
// timeout; callers bound a call through its context if they need to.
func NewGuideAPIClient(baseURL string, logger *zap.Logger) *GuideAPIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GuideAPIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		logger:  logger.Named("GuideAPIClient"),
	}
}

func (c *GuideAPIClient) GenerateGuide(ctx context.Context, req request_models.GuideRequest) (*response_models.TravelGuide, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode guide request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+GenerateGuidePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build guide request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Requesting travel guide",
		zap.Strings("destinations", req.Destinations),
		zap.Bool("has_days", req.Days != nil),
	)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("guide service unreachable: %v: %w", err, utils.ErrGuideService)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		apiErr := &GuideAPIError{
			StatusCode: resp.StatusCode,
			Detail:     readErrorDetail(resp.Body),
		}
		c.logger.Warn("Guide service returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
		)
		return nil, apiErr
	}

	var guide response_models.TravelGuide
	if err := json.NewDecoder(resp.Body).Decode(&guide); err != nil {
		return nil, fmt.Errorf("invalid travel guide response: %v: %w", err, utils.ErrGuideService)
	}
	return &guide, nil
}

// CheckHealth returns whatever the service answers on its health endpoint.
// The status code is not inspected.
func (c *GuideAPIClient) CheckHealth(ctx context.Context) (*response_models.HealthStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+HealthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("guide service unreachable: %v: %w", err, utils.ErrGuideService)
	}
	defer resp.Body.Close()

	var status response_models.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("invalid health response: %v: %w", err, utils.ErrGuideService)
	}
	return &status, nil
}

// readErrorDetail extracts a string "detail" field from an error body. Any
// other shape (validation error lists, HTML, empty body) yields "".
func readErrorDetail(body io.Reader) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}

// ErrorMessage turns a failed generation into the text shown to the user.
func ErrorMessage(err error) string {
	var apiErr *GuideAPIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
