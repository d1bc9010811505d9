// Package model evaluates fitted scikit-learn estimators that were exported
// as JSON parameter documents. Every estimator is read-only once decoded.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrShape is returned when a vector or parameter block has the wrong width.
var ErrShape = errors.New("shape mismatch")

// Kind identifies an exported estimator type.
type Kind string

const (
	KindStandardScaler     Kind = "standard_scaler"
	KindLogisticRegression Kind = "logistic_regression"
	KindDecisionTree       Kind = "decision_tree"
	KindKNeighbors         Kind = "k_neighbors"
	KindGaussianNB         Kind = "gaussian_nb"
	KindSVC                Kind = "svc"
)

// Estimator is implemented by every decoded artifact.
type Estimator interface {
	Kind() Kind
	NumFeatures() int
	FeatureNames() []string
}

// Transformer rescales a feature vector.
type Transformer interface {
	Transform(x []float64) ([]float64, error)
}

// Classifier assigns a class label to a scaled feature vector.
type Classifier interface {
	Predict(x []float64) (int, error)
}

type estimator interface {
	Estimator
	validate() error
}

// meta carries the fields shared by every exported document.
type meta struct {
	EstimatorKind  Kind     `json:"kind"`
	FeatureNamesIn []string `json:"feature_names_in,omitempty"`
}

func (m meta) FeatureNames() []string { return m.FeatureNamesIn }

func (m meta) checkNames(n int) error {
	if len(m.FeatureNamesIn) > 0 && len(m.FeatureNamesIn) != n {
		return fmt.Errorf("%w: %d feature names for %d features", ErrShape, len(m.FeatureNamesIn), n)
	}
	return nil
}

// Decode parses an exported estimator document and checks its parameter shapes.
func Decode(data []byte) (Estimator, error) {
	var head meta
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}

	var est estimator
	switch head.EstimatorKind {
	case KindStandardScaler:
		est = &StandardScaler{}
	case KindLogisticRegression:
		est = &LogisticRegression{}
	case KindDecisionTree:
		est = &DecisionTree{}
	case KindKNeighbors:
		est = &KNeighbors{}
	case KindGaussianNB:
		est = &GaussianNB{}
	case KindSVC:
		est = &SVC{}
	case "":
		return nil, errors.New("missing estimator kind")
	default:
		return nil, fmt.Errorf("unknown estimator kind %q", head.EstimatorKind)
	}

	if err := json.Unmarshal(data, est); err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.EstimatorKind, err)
	}
	if err := est.validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", head.EstimatorKind, err)
	}
	return est, nil
}

func checkWidth(x []float64, n int) error {
	if len(x) != n {
		return fmt.Errorf("%w: got %d features, want %d", ErrShape, len(x), n)
	}
	return nil
}

func checkMatrix(name string, m [][]float64, rows, cols int) error {
	if len(m) != rows {
		return fmt.Errorf("%w: %s has %d rows, want %d", ErrShape, name, len(m), rows)
	}
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrShape, name, i, len(row), cols)
		}
	}
	return nil
}

func checkClasses(classes []int) error {
	if len(classes) < 2 {
		return fmt.Errorf("%w: need at least 2 classes, got %d", ErrShape, len(classes))
	}
	seen := make(map[int]bool, len(classes))
	for _, c := range classes {
		if seen[c] {
			return fmt.Errorf("duplicate class %d", c)
		}
		seen[c] = true
	}
	return nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// argmax returns the first index holding the largest value.
func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
