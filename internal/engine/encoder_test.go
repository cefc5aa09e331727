package engine

import (
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/finadvisor/advisor-service/internal/mlmodel"
	"github.com/finadvisor/advisor-service/internal/models"
)

type stubCodec struct {
	codes map[string]int
}

func (c stubCodec) Encode(category string) (int, error) {
	code, ok := c.codes[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", mlmodel.ErrUnknownCategory, category)
	}
	return code, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var (
	occupations = stubCodec{codes: map[string]int{"Business": 0, "Employee": 1, "Professional": 2, "Retired": 3, "Student": 4}}
	cityTiers   = stubCodec{codes: map[string]int{"Tier 1": 0, "Tier 2": 1, "Tier 3": 2}}
)

func TestEncodeKnownCategories(t *testing.T) {
	enc := NewEncoder(quietLogger())
	p := models.UserProfile{
		Age:           28,
		MonthlyIncome: 75000,
		Occupation:    "Professional",
		CityTier:      "Tier 3",
		Dependents:    2,
	}

	features, err := enc.Encode(p, occupations, cityTiers)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got := features.Vector()
	want := []float64{28, 75000, 2, 2, 2}
	if len(got) != len(want) {
		t.Fatalf("vector length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("feature %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestEncodeUnknownCategoriesFallBack(t *testing.T) {
	enc := NewEncoder(quietLogger())
	p := models.UserProfile{
		Age:           40,
		MonthlyIncome: 50000,
		Occupation:    "Astronaut",
		CityTier:      "Tier 9",
		Dependents:    0,
	}

	features, err := enc.Encode(p, occupations, cityTiers)
	if err != nil {
		t.Fatalf("unknown categories must not fail: %v", err)
	}
	if features.OccupationCode != 0 {
		t.Fatalf("OccupationCode = %f, want default 0", features.OccupationCode)
	}
	if features.CityTierCode != 1 {
		t.Fatalf("CityTierCode = %f, want default 1", features.CityTierCode)
	}
}
