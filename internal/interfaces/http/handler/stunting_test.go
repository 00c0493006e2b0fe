package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	stuntingapp "github.com/laiyolobaru/backend/internal/application/stunting"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupStuntingRouter(svc *MockStuntingService) *gin.Engine {
	r := gin.New()
	r.POST("/public/stunting/predict", NewStuntingHandler(svc).Predict)
	return r
}

func validPredictBody() map[string]any {
	return map[string]any{
		"sex":          "female",
		"age":          0,
		"birth_weight": "3.1",
		"birth_length": "49",
		"body_weight":  "3.1",
		"body_length":  "49",
		"asi_ekslusif": "yes",
	}
}

func TestStuntingHandler_Predict(t *testing.T) {
	svc := new(MockStuntingService)
	svc.On("Predict", mock.Anything, mock.MatchedBy(func(in stuntingapp.PredictInput) bool {
		return in.Sex == "female" && in.AgeMonths == 0 &&
			in.BirthWeight.Equal(decimal.RequireFromString("3.1")) &&
			in.BodyLength.Equal(decimal.NewFromInt(49)) &&
			in.ASIEksklusif == "yes"
	})).Return(&stuntingapp.PredictResponse{
		Prediction: stuntingapp.PredictionResponse{Status: "Normal", RiskLevel: "low", Percentage: 12.5},
		NextSteps:  []string{},
	}, nil)

	w := performRequest(setupStuntingRouter(svc), http.MethodPost, "/public/stunting/predict", validPredictBody())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"risk_level":"low"`)
	svc.AssertExpectations(t)
}

func TestStuntingHandler_Predict_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]any)
		field  string
	}{
		{"missing age", func(b map[string]any) { delete(b, "age") }, "age"},
		{"age over five years", func(b map[string]any) { b["age"] = 61 }, "age"},
		{"unknown sex", func(b map[string]any) { b["sex"] = "x" }, "sex"},
		{"bad breastfeeding answer", func(b map[string]any) { b["asi_ekslusif"] = "maybe" }, "asi_ekslusif"},
		{"missing body weight", func(b map[string]any) { delete(b, "body_weight") }, "body_weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStuntingService)
			body := validPredictBody()
			tt.mutate(body)

			w := performRequest(setupStuntingRouter(svc), http.MethodPost, "/public/stunting/predict", body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			require.Len(t, resp.Error.Details, 1)
			assert.Equal(t, tt.field, resp.Error.Details[0].Field)
			svc.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
		})
	}
}

func TestStuntingHandler_Predict_UpstreamErrors(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{stuntingapp.ErrPredictionUnavailable, dto.ErrCodePredictionUnavailable},
		{stuntingapp.ErrPredictionFailed, dto.ErrCodePredictionFailed},
		{stuntingapp.ErrPredictionInvalidResponse, dto.ErrCodePredictionInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			svc := new(MockStuntingService)
			svc.On("Predict", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := performRequest(setupStuntingRouter(svc), http.MethodPost, "/public/stunting/predict", validPredictBody())

			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Equal(t, tt.code, decodeResponse(t, w).Error.Code)
		})
	}
}
