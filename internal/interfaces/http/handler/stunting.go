package handler

import (
	"github.com/gin-gonic/gin"
	stuntingapp "github.com/laiyolobaru/backend/internal/application/stunting"
	"github.com/shopspring/decimal"
)

// StuntingPredictRequest is the public screening form. Weights are in kg,
// lengths in cm and age in months.
type StuntingPredictRequest struct {
	Sex          string           `json:"sex" binding:"required,oneof=male female"`
	Age          *int             `json:"age" binding:"required,min=0,max=60"`
	BirthWeight  *decimal.Decimal `json:"birth_weight" binding:"required"`
	BirthLength  *decimal.Decimal `json:"birth_length" binding:"required"`
	BodyWeight   *decimal.Decimal `json:"body_weight" binding:"required"`
	BodyLength   *decimal.Decimal `json:"body_length" binding:"required"`
	ASIEksklusif string           `json:"asi_ekslusif" binding:"required,oneof=yes no"`
}

// StuntingHandler proxies the stunting screening model
type StuntingHandler struct {
	BaseHandler
	stuntingService StuntingService
}

// NewStuntingHandler creates a new stunting handler
func NewStuntingHandler(stuntingService StuntingService) *StuntingHandler {
	return &StuntingHandler{stuntingService: stuntingService}
}

// Predict godoc
// @Summary      Stunting risk screening
// @Description  Forwards the measurements to the prediction model. Nothing is stored. The result is AI-assisted and not a diagnosis.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        request body StuntingPredictRequest true "Measurements"
// @Success      200 {object} dto.Response{data=stuntingapp.PredictResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /public/stunting/predict [post]
func (h *StuntingHandler) Predict(c *gin.Context) {
	var req StuntingPredictRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.stuntingService.Predict(c.Request.Context(), stuntingapp.PredictInput{
		Sex:          req.Sex,
		AgeMonths:    *req.Age,
		BirthWeight:  *req.BirthWeight,
		BirthLength:  *req.BirthLength,
		BodyWeight:   *req.BodyWeight,
		BodyLength:   *req.BodyLength,
		ASIEksklusif: req.ASIEksklusif,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
