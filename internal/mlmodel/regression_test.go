package mlmodel

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/finadvisor/advisor-service/internal/models"
)

const testPMML = `<?xml version="1.0"?>
<PMML version="4.4">
  <RegressionModel functionName="regression">
    <RegressionTable intercept="1000">
      <NumericPredictor name="Age" coefficient="10"/>
      <NumericPredictor name="Income" coefficient="0.5"/>
      <NumericPredictor name="Occupation_Encoded" coefficient="100"/>
      <NumericPredictor name="City_Tier_Encoded" coefficient="-200"/>
      <NumericPredictor name="Dependents" coefficient="300"/>
    </RegressionTable>
  </RegressionModel>
</PMML>`

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLoadRegressionModelAndPredict(t *testing.T) {
	path := writeArtifact(t, "model.pmml", testPMML)
	model, err := LoadRegressionModel(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadRegressionModel failed: %v", err)
	}

	features := models.EncodedFeatures{Age: 30, Income: 50000, OccupationCode: 1, CityTierCode: 2, Dependents: 1}
	got, err := model.Predict(context.Background(), features)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	// 1000 + 10*30 + 0.5*50000 + 100*1 - 200*2 + 300*1
	want := 26300.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Predict = %f, want %f", got, want)
	}
}

func TestLoadRegressionModelMissingArtifact(t *testing.T) {
	_, err := LoadRegressionModel(filepath.Join(t.TempDir(), "nope.pmml"), quietLogger())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("error = %v, want ErrModelUnavailable", err)
	}
}

func TestLoadRegressionModelMissingPredictor(t *testing.T) {
	pmml := `<?xml version="1.0"?>
<PMML version="4.4">
  <RegressionModel functionName="regression">
    <RegressionTable intercept="1000">
      <NumericPredictor name="Age" coefficient="10"/>
    </RegressionTable>
  </RegressionModel>
</PMML>`
	path := writeArtifact(t, "model.pmml", pmml)
	_, err := LoadRegressionModel(path, quietLogger())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("error = %v, want ErrModelUnavailable", err)
	}
}

func TestPredictClampsNegativeToZero(t *testing.T) {
	pmml := `<?xml version="1.0"?>
<PMML version="4.4">
  <RegressionModel functionName="regression">
    <RegressionTable intercept="-5000">
      <NumericPredictor name="Age" coefficient="1"/>
      <NumericPredictor name="Income" coefficient="0"/>
      <NumericPredictor name="Occupation_Encoded" coefficient="0"/>
      <NumericPredictor name="City_Tier_Encoded" coefficient="0"/>
      <NumericPredictor name="Dependents" coefficient="0"/>
    </RegressionTable>
  </RegressionModel>
</PMML>`
	path := writeArtifact(t, "model.pmml", pmml)
	model, err := LoadRegressionModel(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadRegressionModel failed: %v", err)
	}

	got, err := model.Predict(context.Background(), models.EncodedFeatures{Age: 20})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if got != 0 {
		t.Fatalf("Predict = %f, want 0", got)
	}
}

func TestLabelCodecEncode(t *testing.T) {
	path := writeArtifact(t, "occupation.json", `{"classes": ["Business", "Employee", "Professional", "Retired", "Student"]}`)
	codec, err := LoadLabelCodec("occupation", path)
	if err != nil {
		t.Fatalf("LoadLabelCodec failed: %v", err)
	}

	code, err := codec.Encode("Professional")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}

	_, err = codec.Encode("Astronaut")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("error = %v, want ErrUnknownCategory", err)
	}
}

func TestLoadLabelCodecBadArtifacts(t *testing.T) {
	if _, err := LoadLabelCodec("occupation", filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("missing artifact: error = %v, want ErrModelUnavailable", err)
	}

	path := writeArtifact(t, "empty.json", `{"classes": []}`)
	if _, err := LoadLabelCodec("occupation", path); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("empty artifact: error = %v, want ErrModelUnavailable", err)
	}
}
