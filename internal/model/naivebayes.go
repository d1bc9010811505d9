package model

import (
	"errors"
	"fmt"
	"math"
)

// GaussianNB is a fitted Gaussian naive Bayes classifier.
type GaussianNB struct {
	meta
	ClassPrior []float64   `json:"class_prior"`
	Theta      [][]float64 `json:"theta"`
	Var        [][]float64 `json:"var"`
	Classes    []int       `json:"classes"`
}

func (m *GaussianNB) Kind() Kind { return KindGaussianNB }

func (m *GaussianNB) NumFeatures() int {
	if len(m.Theta) == 0 {
		return 0
	}
	return len(m.Theta[0])
}

func (m *GaussianNB) validate() error {
	if err := checkClasses(m.Classes); err != nil {
		return err
	}
	k, n := len(m.Classes), m.NumFeatures()
	if n == 0 {
		return errors.New("empty theta")
	}
	if len(m.ClassPrior) != k {
		return fmt.Errorf("%w: %d priors for %d classes", ErrShape, len(m.ClassPrior), k)
	}
	for i, p := range m.ClassPrior {
		if p <= 0 {
			return fmt.Errorf("class %d has non-positive prior %v", m.Classes[i], p)
		}
	}
	if err := checkMatrix("theta", m.Theta, k, n); err != nil {
		return err
	}
	if err := checkMatrix("var", m.Var, k, n); err != nil {
		return err
	}
	for i, row := range m.Var {
		for j, v := range row {
			if v <= 0 {
				return fmt.Errorf("class %d feature %d has non-positive variance %v", m.Classes[i], j, v)
			}
		}
	}
	return m.checkNames(n)
}

// Predict returns the class with the highest joint log-likelihood.
func (m *GaussianNB) Predict(x []float64) (int, error) {
	if err := checkWidth(x, m.NumFeatures()); err != nil {
		return 0, err
	}

	jll := make([]float64, len(m.Classes))
	for c := range m.Classes {
		ll := math.Log(m.ClassPrior[c])
		for j, v := range x {
			variance := m.Var[c][j]
			d := v - m.Theta[c][j]
			ll -= 0.5 * math.Log(2*math.Pi*variance)
			ll -= 0.5 * d * d / variance
		}
		jll[c] = ll
	}
	return m.Classes[argmax(jll)], nil
}
