package predict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Skufu/GlucoRisk/internal/artifact"
	"github.com/Skufu/GlucoRisk/internal/model"
	"github.com/Skufu/GlucoRisk/internal/patient"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func loadShipped(t *testing.T) *artifact.Store {
	t.Helper()
	store, err := artifact.Load(context.Background(), artifact.DirSource{Root: "../../models"}, artifact.DefaultManifest(), discard)
	if err != nil {
		t.Fatalf("load artifacts: %v", err)
	}
	return store
}

var (
	lowRisk = patient.Input{
		Gender: "Male", Age: 45, Hypertension: "No", HeartDisease: "No",
		SmokingHistory: "Never", BMI: 28.5, HbA1cLevel: 6.1, BloodGlucoseLevel: 140,
	}
	highRisk = patient.Input{
		Gender: "Female", Age: 62, Hypertension: "Yes", HeartDisease: "Yes",
		SmokingHistory: "Current", BMI: 34, HbA1cLevel: 8.2, BloodGlucoseLevel: 260,
	}
)

func TestService_ScenarioLogisticRegression(t *testing.T) {
	svc := NewService(loadShipped(t), discard)

	out, err := svc.Run(lowRisk, artifact.LogisticRegression)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(patient.Vector{1, 45, 0, 0, 0, 28.5, 6.1, 140}, out.Features); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}
	if out.Label != 0 && out.Label != 1 {
		t.Errorf("label = %d, want 0 or 1", out.Label)
	}
	if out.Model != artifact.LogisticRegression {
		t.Errorf("model = %q", out.Model)
	}
}

func TestService_AllModels(t *testing.T) {
	svc := NewService(loadShipped(t), discard)

	for _, key := range artifact.Keys() {
		t.Run(string(key), func(t *testing.T) {
			low, err := svc.Run(lowRisk, key)
			if err != nil {
				t.Fatalf("Run low risk: %v", err)
			}
			high, err := svc.Run(highRisk, key)
			if err != nil {
				t.Fatalf("Run high risk: %v", err)
			}
			if low.Label != 0 || high.Label != 1 {
				t.Errorf("labels = (%d, %d), want (0, 1)", low.Label, high.Label)
			}
		})
	}
}

func TestPredictor_Idempotent(t *testing.T) {
	p := NewPredictor(loadShipped(t))
	vec := patient.Encode(highRisk)

	for _, key := range artifact.Keys() {
		first, err := p.Predict(vec, key)
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		second, err := p.Predict(vec, key)
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		if first != second {
			t.Errorf("%s: %+v then %+v", key, first, second)
		}
	}
}

type spyTransformer struct{ calls int }

func (s *spyTransformer) Transform(x []float64) ([]float64, error) {
	s.calls++
	return x, nil
}

type spyClassifier struct {
	calls int
	err   error
}

func (s *spyClassifier) Predict([]float64) (int, error) {
	s.calls++
	return 1, s.err
}

type spyModels struct {
	scaler *spyTransformer
	clf    *spyClassifier
}

func (m spyModels) Scaler() model.Transformer { return m.scaler }

func (m spyModels) Classifier(key artifact.ModelKey) (model.Classifier, error) {
	if key != artifact.NaiveBayes {
		return nil, &artifact.Error{Name: string(key), Op: "lookup", Err: artifact.ErrUnknownModel}
	}
	return m.clf, nil
}

func newSpy() spyModels {
	return spyModels{scaler: &spyTransformer{}, clf: &spyClassifier{}}
}

func TestService_OtherGenderNeverReachesModel(t *testing.T) {
	spy := newSpy()
	svc := NewService(spy, discard)

	in := patient.Input{
		Gender: "Other", Age: 30, Hypertension: "No", HeartDisease: "No",
		SmokingHistory: "Never", BMI: 22, HbA1cLevel: 5, BloodGlucoseLevel: 100,
	}
	_, err := svc.Run(in, artifact.NaiveBayes)

	var verr *patient.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if spy.scaler.calls != 0 || spy.clf.calls != 0 {
		t.Errorf("model invoked: scaler=%d classifier=%d", spy.scaler.calls, spy.clf.calls)
	}
}

func TestService_OutOfRangeNeverReachesModel(t *testing.T) {
	spy := newSpy()
	svc := NewService(spy, discard)

	in := lowRisk
	in.BloodGlucoseLevel = 900
	_, err := svc.Run(in, artifact.NaiveBayes)

	var verr *patient.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if spy.clf.calls != 0 {
		t.Error("classifier invoked for out of range input")
	}
}

func TestService_UnknownModel(t *testing.T) {
	spy := newSpy()
	_, err := NewService(spy, discard).Run(lowRisk, artifact.DecisionTree)
	if !errors.Is(err, artifact.ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
	if spy.scaler.calls != 0 {
		t.Error("scaler invoked for unknown model")
	}
}

func TestService_ClassifierFailureSurfaces(t *testing.T) {
	spy := newSpy()
	spy.clf.err = model.ErrShape

	_, err := NewService(spy, discard).Run(lowRisk, artifact.NaiveBayes)
	var aerr *artifact.Error
	if !errors.As(err, &aerr) || aerr.Op != "predict" {
		t.Fatalf("expected predict artifact error, got %v", err)
	}
	if !errors.Is(err, model.ErrShape) {
		t.Errorf("expected wrapped ErrShape, got %v", err)
	}
}
