package model

import (
	"errors"
	"fmt"
	"math"
)

// SVC is a fitted binary support vector classifier. DualCoef and Intercept
// follow the exported sign convention: a positive decision value means Classes[1].
type SVC struct {
	meta
	Kernel         string      `json:"kernel"`
	Gamma          float64     `json:"gamma"`
	Coef0          float64     `json:"coef0"`
	Degree         int         `json:"degree"`
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       [][]float64 `json:"dual_coef"`
	Intercept      []float64   `json:"intercept"`
	Classes        []int       `json:"classes"`
}

func (m *SVC) Kind() Kind { return KindSVC }

func (m *SVC) NumFeatures() int {
	if len(m.SupportVectors) == 0 {
		return 0
	}
	return len(m.SupportVectors[0])
}

func (m *SVC) validate() error {
	if err := checkClasses(m.Classes); err != nil {
		return err
	}
	if len(m.Classes) != 2 {
		return fmt.Errorf("only binary svc is supported, got %d classes", len(m.Classes))
	}
	switch m.Kernel {
	case "linear", "rbf", "poly", "sigmoid":
	default:
		return fmt.Errorf("unsupported kernel %q", m.Kernel)
	}
	if m.Kernel == "poly" && m.Degree <= 0 {
		return fmt.Errorf("poly kernel needs a positive degree, got %d", m.Degree)
	}

	n := m.NumFeatures()
	if n == 0 {
		return errors.New("no support vectors")
	}
	if err := checkMatrix("support_vectors", m.SupportVectors, len(m.SupportVectors), n); err != nil {
		return err
	}
	if err := checkMatrix("dual_coef", m.DualCoef, 1, len(m.SupportVectors)); err != nil {
		return err
	}
	if len(m.Intercept) != 1 {
		return fmt.Errorf("%w: want 1 intercept, got %d", ErrShape, len(m.Intercept))
	}
	return m.checkNames(n)
}

// Decision returns sum(dual_coef * K(sv, x)) + intercept.
func (m *SVC) Decision(x []float64) (float64, error) {
	if err := checkWidth(x, m.NumFeatures()); err != nil {
		return 0, err
	}
	d := m.Intercept[0]
	for i, sv := range m.SupportVectors {
		d += m.DualCoef[0][i] * m.kernel(sv, x)
	}
	return d, nil
}

func (m *SVC) Predict(x []float64) (int, error) {
	d, err := m.Decision(x)
	if err != nil {
		return 0, err
	}
	if d > 0 {
		return m.Classes[1], nil
	}
	return m.Classes[0], nil
}

func (m *SVC) kernel(a, b []float64) float64 {
	switch m.Kernel {
	case "rbf":
		var s float64
		for i := range a {
			d := a[i] - b[i]
			s += d * d
		}
		return math.Exp(-m.Gamma * s)
	case "poly":
		return math.Pow(m.Gamma*dot(a, b)+m.Coef0, float64(m.Degree))
	case "sigmoid":
		return math.Tanh(m.Gamma*dot(a, b) + m.Coef0)
	default:
		return dot(a, b)
	}
}
