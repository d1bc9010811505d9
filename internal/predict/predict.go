// Package predict runs one form submission through encoding, validation,
// scaling and classification.
package predict

import (
	"log/slog"

	"github.com/Skufu/GlucoRisk/internal/artifact"
	"github.com/Skufu/GlucoRisk/internal/model"
	"github.com/Skufu/GlucoRisk/internal/patient"
)

// Models is satisfied by *artifact.Store.
type Models interface {
	Scaler() model.Transformer
	Classifier(key artifact.ModelKey) (model.Classifier, error)
}

// Result is the label a classifier assigned to one submission.
type Result struct {
	Label int               `json:"label"`
	Model artifact.ModelKey `json:"model"`
}

// Predictor scales a validated vector and classifies it with the selected model.
type Predictor struct {
	models Models
}

func NewPredictor(models Models) *Predictor {
	return &Predictor{models: models}
}

// Predict expects a vector that already passed patient.Validate. Failures are
// returned as *artifact.Error.
func (p *Predictor) Predict(v patient.Vector, key artifact.ModelKey) (Result, error) {
	clf, err := p.models.Classifier(key)
	if err != nil {
		return Result{}, err
	}

	scaled, err := p.models.Scaler().Transform(v[:])
	if err != nil {
		return Result{}, &artifact.Error{Name: "scaler", Op: "transform", Err: err}
	}

	label, err := clf.Predict(scaled)
	if err != nil {
		return Result{}, &artifact.Error{Name: string(key), Op: "predict", Err: err}
	}
	return Result{Label: label, Model: key}, nil
}

// Outcome is a successful Run: the label plus the vector it was computed from.
type Outcome struct {
	Result
	Features patient.Vector `json:"features"`
}

// Service is the synchronous request path behind the form and the API.
type Service struct {
	predictor *Predictor
	logger    *slog.Logger
}

func NewService(models Models, logger *slog.Logger) *Service {
	return &Service{predictor: NewPredictor(models), logger: logger}
}

// Run encodes in, rejects it with *patient.ValidationError when incomplete or
// out of range, and otherwise predicts with the model named by key.
func (s *Service) Run(in patient.Input, key artifact.ModelKey) (Outcome, error) {
	if err := patient.CheckRanges(in); err != nil {
		s.logger.Info("submission rejected", "reason", err)
		return Outcome{}, err
	}

	vec := patient.Encode(in)
	if err := patient.Validate(vec); err != nil {
		s.logger.Info("submission rejected", "reason", err)
		return Outcome{}, err
	}

	res, err := s.predictor.Predict(vec, key)
	if err != nil {
		s.logger.Error("prediction failed", "model", key, "error", err)
		return Outcome{}, err
	}

	s.logger.Debug("prediction", "model", key, "label", res.Label)
	return Outcome{Result: res, Features: vec}, nil
}
