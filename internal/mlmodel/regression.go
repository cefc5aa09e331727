package mlmodel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/finadvisor/advisor-service/internal/models"
)

// Predictor produces a monthly expense estimate for an encoded profile.
type Predictor interface {
	Predict(ctx context.Context, features models.EncodedFeatures) (float64, error)
}

// Feature names in the trained model, in training order. Must stay aligned
// with EncodedFeatures.Vector.
var featureOrder = []string{"Age", "Income", "Occupation_Encoded", "City_Tier_Encoded", "Dependents"}

// RegressionModel is an expense regression loaded from a PMML artifact.
// It is loaded once at startup and read-only afterwards.
type RegressionModel struct {
	intercept    float64
	coefficients []float64
	log          *logrus.Logger
}

// LoadRegressionModel parses the PMML artifact at path. Any load or parse
// failure wraps ErrModelUnavailable; the caller must refuse to serve
// predictions without a loaded model.
func LoadRegressionModel(path string, log *logrus.Logger) (*RegressionModel, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: read model artifact %s: %v", ErrModelUnavailable, path, err)
	}

	table := doc.FindElement("//RegressionModel/RegressionTable")
	if table == nil {
		return nil, fmt.Errorf("%w: no regression table in %s", ErrModelUnavailable, path)
	}

	intercept, err := strconv.ParseFloat(table.SelectAttrValue("intercept", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad intercept in %s: %v", ErrModelUnavailable, path, err)
	}

	byName := make(map[string]float64)
	for _, pred := range table.SelectElements("NumericPredictor") {
		name := pred.SelectAttrValue("name", "")
		coef, err := strconv.ParseFloat(pred.SelectAttrValue("coefficient", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad coefficient for %q in %s: %v", ErrModelUnavailable, name, path, err)
		}
		byName[name] = coef
	}

	coefficients := make([]float64, len(featureOrder))
	for i, name := range featureOrder {
		coef, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: predictor %q missing from %s", ErrModelUnavailable, name, path)
		}
		coefficients[i] = coef
	}

	log.Infof("Loaded expense model from %s (%d predictors)", path, len(coefficients))
	return &RegressionModel{intercept: intercept, coefficients: coefficients, log: log}, nil
}

// Predict evaluates the regression for one feature row. The output is
// clamped at zero: a predicted expense can never be negative.
func (m *RegressionModel) Predict(ctx context.Context, features models.EncodedFeatures) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("prediction cancelled: %w", err)
	}

	expenses := m.intercept
	for i, v := range features.Vector() {
		expenses += m.coefficients[i] * v
	}
	if expenses < 0 {
		m.log.Warnf("Model predicted negative expenses (%.2f), clamping to 0", expenses)
		expenses = 0
	}
	return expenses, nil
}

// Registry bundles the frozen model and codecs for injection into the
// service layer.
type Registry struct {
	Model           Predictor
	OccupationCodec Codec
	CityTierCodec   Codec
}

// LoadRegistry loads all prediction artifacts at process start.
func LoadRegistry(modelPath, occupationPath, cityTierPath string, log *logrus.Logger) (*Registry, error) {
	model, err := LoadRegressionModel(modelPath, log)
	if err != nil {
		return nil, err
	}
	occupation, err := LoadLabelCodec("occupation", occupationPath)
	if err != nil {
		return nil, err
	}
	cityTier, err := LoadLabelCodec("city tier", cityTierPath)
	if err != nil {
		return nil, err
	}
	return &Registry{Model: model, OccupationCodec: occupation, CityTierCodec: cityTier}, nil
}
