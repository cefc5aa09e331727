package engine

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/finadvisor/advisor-service/internal/mlmodel"
	"github.com/finadvisor/advisor-service/internal/models"
)

// Default codes substituted when a category was not seen at training time.
// The user still gets a prediction instead of an encoding failure.
const (
	defaultOccupationCode = 0
	defaultCityTierCode   = 1
)

// Encoder turns a user profile into the feature row the expense model
// expects.
type Encoder struct {
	log *logrus.Logger
}

// NewEncoder initializes a new encoder
func NewEncoder(log *logrus.Logger) *Encoder {
	return &Encoder{log: log}
}

// Encode looks up the categorical codes and assembles the feature row in
// training order. An unknown category never fails the request: the default
// code is substituted and the miss is logged for diagnostics.
func (e *Encoder) Encode(profile models.UserProfile, occupation, cityTier mlmodel.Codec) (models.EncodedFeatures, error) {
	occCode, err := occupation.Encode(profile.Occupation)
	if err != nil {
		if !errors.Is(err, mlmodel.ErrUnknownCategory) {
			return models.EncodedFeatures{}, err
		}
		e.log.Warnf("Unknown occupation %q, using default code %d", profile.Occupation, defaultOccupationCode)
		occCode = defaultOccupationCode
	}

	cityCode, err := cityTier.Encode(profile.CityTier)
	if err != nil {
		if !errors.Is(err, mlmodel.ErrUnknownCategory) {
			return models.EncodedFeatures{}, err
		}
		e.log.Warnf("Unknown city tier %q, using default code %d", profile.CityTier, defaultCityTierCode)
		cityCode = defaultCityTierCode
	}

	return models.EncodedFeatures{
		Age:            float64(profile.Age),
		Income:         profile.MonthlyIncome,
		OccupationCode: float64(occCode),
		CityTierCode:   float64(cityCode),
		Dependents:     float64(profile.Dependents),
	}, nil
}
