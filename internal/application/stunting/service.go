// Package stunting forwards child measurements to the screening model and
// shapes its answer for the public page.
package stunting

import (
	"context"
	"errors"

	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/stunting"
	"github.com/laiyolobaru/backend/internal/infrastructure/predictor"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Outcomes reported to Metrics
const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
	OutcomeInvalid     = "invalid_response"
)

var (
	ErrPredictionUnavailable     = shared.NewDomainError("PREDICTION_UNAVAILABLE", "Layanan prediksi stunting sedang tidak dapat dihubungi. Silakan coba lagi nanti")
	ErrPredictionFailed          = shared.NewDomainError("PREDICTION_FAILED", "Layanan prediksi stunting gagal memproses permintaan")
	ErrPredictionInvalidResponse = shared.NewDomainError("PREDICTION_INVALID_RESPONSE", "Layanan prediksi stunting memberikan jawaban yang tidak valid")
)

// Metrics records prediction outcomes
type Metrics interface {
	RecordPrediction(ctx context.Context, outcome string)
}

// Service wraps the external prediction model. Measurements and results are never stored.
type Service struct {
	predictor stunting.Predictor
	metrics   Metrics
	logger    *zap.Logger
}

// NewService creates a stunting service. metrics may be nil.
func NewService(p stunting.Predictor, metrics Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{predictor: p, metrics: metrics, logger: logger}
}

// Predict validates input and asks the model for a risk assessment
func (s *Service) Predict(ctx context.Context, input PredictInput) (*PredictResponse, error) {
	m := input.toMeasurement()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	result, err := s.predictor.Predict(ctx, m)
	if err != nil {
		outcome, mapped := mapPredictorError(err)
		s.record(ctx, outcome)
		s.logger.Warn("Stunting prediction failed", zap.String("outcome", outcome), zap.Error(err))
		return nil, mapped
	}
	s.record(ctx, OutcomeSuccess)

	nextSteps := result.NextSteps
	if nextSteps == nil {
		nextSteps = []string{}
	}
	return &PredictResponse{
		Prediction: PredictionResponse{
			Status:     result.Prediction.Status,
			RiskLevel:  result.Prediction.RiskLevel,
			Percentage: result.Prediction.Percentage,
		},
		Interpretation: result.Interpretation,
		Recommendation: result.Recommendation,
		NextSteps:      nextSteps,
		Disclaimer:     stunting.Disclaimer,
	}, nil
}

func (s *Service) record(ctx context.Context, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordPrediction(ctx, outcome)
	}
}

func mapPredictorError(err error) (string, error) {
	var upstream *predictor.UpstreamError
	switch {
	case errors.As(err, &upstream):
		if upstream.Message != "" {
			return OutcomeFailed, shared.NewDomainError(ErrPredictionFailed.Code, ErrPredictionFailed.Message+": "+upstream.Message)
		}
		return OutcomeFailed, ErrPredictionFailed
	case errors.Is(err, predictor.ErrRequestFailed):
		return OutcomeFailed, ErrPredictionFailed
	case errors.Is(err, predictor.ErrInvalidResponse):
		return OutcomeInvalid, ErrPredictionInvalidResponse
	default:
		// Timeouts, connection errors and a missing URL all mean the model cannot be reached
		return OutcomeUnavailable, ErrPredictionUnavailable
	}
}

// PredictInput is the public screening form
type PredictInput struct {
	Sex          string
	AgeMonths    int
	BirthWeight  decimal.Decimal
	BirthLength  decimal.Decimal
	BodyWeight   decimal.Decimal
	BodyLength   decimal.Decimal
	ASIEksklusif string
}

func (in PredictInput) toMeasurement() stunting.Measurement {
	return stunting.Measurement{
		Sex:          stunting.Sex(in.Sex),
		AgeMonths:    in.AgeMonths,
		BirthWeight:  in.BirthWeight,
		BirthLength:  in.BirthLength,
		BodyWeight:   in.BodyWeight,
		BodyLength:   in.BodyLength,
		ASIEksklusif: stunting.YesNo(in.ASIEksklusif),
	}
}

// PredictionResponse is the model's classification
type PredictionResponse struct {
	Status     string  `json:"status"`
	RiskLevel  string  `json:"risk_level"`
	Percentage float64 `json:"percentage"`
}

// PredictResponse is returned to the public page
type PredictResponse struct {
	Prediction     PredictionResponse `json:"prediction"`
	Interpretation string             `json:"interpretation"`
	Recommendation string             `json:"recommendation"`
	NextSteps      []string           `json:"next_steps"`
	Disclaimer     string             `json:"disclaimer"`
}
