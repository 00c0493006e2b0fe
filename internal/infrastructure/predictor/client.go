// Package predictor calls the external stunting-risk model over HTTP.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/laiyolobaru/backend/internal/domain/stunting"
	"github.com/laiyolobaru/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxResponseSize = 1 << 20

var (
	// ErrNotConfigured is returned when no prediction URL is set
	ErrNotConfigured = errors.New("predictor: service url is not configured")
	// ErrUnavailable is returned when the service cannot be reached in time
	ErrUnavailable = errors.New("predictor: service unavailable")
	// ErrRequestFailed is returned when the service answers with a non-2xx status
	ErrRequestFailed = errors.New("predictor: request failed")
	// ErrInvalidResponse is returned when the response cannot be understood
	ErrInvalidResponse = errors.New("predictor: invalid response")
)

// UpstreamError carries the status and message of a failed prediction call
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("predictor: upstream returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("predictor: upstream returned HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrRequestFailed
func (e *UpstreamError) Unwrap() error {
	return ErrRequestFailed
}

// Client implements stunting.Predictor against the configured HTTP endpoint
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Ensure Client implements stunting.Predictor
var _ stunting.Predictor = (*Client)(nil)

// NewClient creates a prediction client. Outgoing requests carry trace context.
func NewClient(cfg config.PredictorConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

type predictRequest struct {
	Sex          string  `json:"sex"`
	Age          int     `json:"age"`
	BirthWeight  float64 `json:"birth_weight"`
	BirthLength  float64 `json:"birth_length"`
	BodyWeight   float64 `json:"body_weight"`
	BodyLength   float64 `json:"body_length"`
	ASIEksklusif string  `json:"asi_ekslusif"`
}

type predictResponse struct {
	Prediction *struct {
		Status     string    `json:"status"`
		RiskLevel  string    `json:"risk_level"`
		Percentage flexFloat `json:"percentage"`
	} `json:"prediction"`
	Interpretation string   `json:"interpretation"`
	Recommendation string   `json:"recommendation"`
	NextSteps      []string `json:"next_steps"`
}

// flexFloat accepts 72.5, "72.5" and "72.5%"
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("percentage %q is not a number", string(b))
	}
	*f = flexFloat(v)
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  any    `json:"detail"`
}

func (e errorBody) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	}
	if s, ok := e.Detail.(string); ok {
		return s
	}
	return ""
}

// Predict sends one measurement to the model. There is no retry.
func (c *Client) Predict(ctx context.Context, m stunting.Measurement) (*stunting.Result, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(predictRequest{
		Sex:          string(m.Sex),
		Age:          m.AgeMonths,
		BirthWeight:  m.BirthWeight.InexactFloat64(),
		BirthLength:  m.BirthLength.InexactFloat64(),
		BodyWeight:   m.BodyWeight.InexactFloat64(),
		BodyLength:   m.BodyLength.InexactFloat64(),
		ASIEksklusif: string(m.ASIEksklusif),
	})
	if err != nil {
		return nil, fmt.Errorf("predictor: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("predictor: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Prediction service unreachable",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		c.logger.Warn("Prediction service returned an error",
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: eb.text()}
	}

	var pr predictResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if pr.Prediction == nil || strings.TrimSpace(pr.Prediction.Status) == "" {
		return nil, fmt.Errorf("%w: missing prediction.status", ErrInvalidResponse)
	}

	c.logger.Debug("Prediction received",
		zap.String("risk_level", pr.Prediction.RiskLevel),
		zap.Duration("elapsed", time.Since(start)))

	nextSteps := pr.NextSteps
	if nextSteps == nil {
		nextSteps = []string{}
	}
	return &stunting.Result{
		Prediction: stunting.Prediction{
			Status:     pr.Prediction.Status,
			RiskLevel:  pr.Prediction.RiskLevel,
			Percentage: float64(pr.Prediction.Percentage),
		},
		Interpretation: pr.Interpretation,
		Recommendation: pr.Recommendation,
		NextSteps:      nextSteps,
	}, nil
}
