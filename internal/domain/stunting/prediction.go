// Package stunting describes the child stunting-risk screening contract.
// The model itself runs in an external service; this package only validates
// the measurements and shapes the result.
package stunting

import (
	"context"
	"fmt"

	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sex of the child
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// YesNo answers the exclusive breastfeeding question
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

// Disclaimer accompanies every prediction shown to the public.
const Disclaimer = "Hasil ini merupakan skrining berbantuan AI dan bukan diagnosis medis. Konsultasikan dengan tenaga kesehatan di Posyandu atau Puskesmas terdekat."

// MaxAgeMonths is the oldest age accepted for screening (under-five children)
const MaxAgeMonths = 60

type bounds struct {
	field    string
	min, max decimal.Decimal
	unit     string
}

var (
	birthWeightBounds = bounds{"birth_weight", decimal.RequireFromString("0.5"), decimal.NewFromInt(6), "kg"}
	birthLengthBounds = bounds{"birth_length", decimal.NewFromInt(30), decimal.NewFromInt(60), "cm"}
	bodyWeightBounds  = bounds{"body_weight", decimal.NewFromInt(1), decimal.NewFromInt(40), "kg"}
	bodyLengthBounds  = bounds{"body_length", decimal.NewFromInt(40), decimal.NewFromInt(130), "cm"}
)

// Measurement is the input sent to the prediction service.
type Measurement struct {
	Sex          Sex
	AgeMonths    int
	BirthWeight  decimal.Decimal // kg
	BirthLength  decimal.Decimal // cm
	BodyWeight   decimal.Decimal // kg
	BodyLength   decimal.Decimal // cm
	ASIEksklusif YesNo
}

// Validate checks that every field is present and physiologically plausible.
func (m Measurement) Validate() error {
	if m.Sex != SexMale && m.Sex != SexFemale {
		return shared.NewDomainError("INVALID_SEX", "Jenis kelamin harus male atau female")
	}
	if m.AgeMonths < 0 || m.AgeMonths > MaxAgeMonths {
		return shared.NewDomainError("INVALID_AGE", fmt.Sprintf("Usia harus antara 0 dan %d bulan", MaxAgeMonths))
	}
	for _, c := range []struct {
		b bounds
		v decimal.Decimal
	}{
		{birthWeightBounds, m.BirthWeight},
		{birthLengthBounds, m.BirthLength},
		{bodyWeightBounds, m.BodyWeight},
		{bodyLengthBounds, m.BodyLength},
	} {
		if c.v.LessThan(c.b.min) || c.v.GreaterThan(c.b.max) {
			return shared.NewDomainError("INVALID_MEASUREMENT",
				fmt.Sprintf("%s harus antara %s dan %s %s", c.b.field, c.b.min.String(), c.b.max.String(), c.b.unit))
		}
	}
	if m.ASIEksklusif != Yes && m.ASIEksklusif != No {
		return shared.NewDomainError("INVALID_ASI_EKSLUSIF", "asi_ekslusif harus yes atau no")
	}
	return nil
}

// Prediction is the model's classification
type Prediction struct {
	Status     string
	RiskLevel  string
	Percentage float64
}

// Result is what the prediction service returns
type Result struct {
	Prediction     Prediction
	Interpretation string
	Recommendation string
	NextSteps      []string
}

// Predictor calls the external model.
type Predictor interface {
	Predict(ctx context.Context, m Measurement) (*Result, error)
}
