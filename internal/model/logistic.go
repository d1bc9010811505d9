package model

import (
	"errors"
	"fmt"
)

// LogisticRegression is a fitted linear classifier. Binary models carry a
// single coefficient row; multiclass models carry one row per class.
type LogisticRegression struct {
	meta
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
	Classes   []int       `json:"classes"`
}

func (m *LogisticRegression) Kind() Kind { return KindLogisticRegression }

func (m *LogisticRegression) NumFeatures() int {
	if len(m.Coef) == 0 {
		return 0
	}
	return len(m.Coef[0])
}

func (m *LogisticRegression) validate() error {
	if err := checkClasses(m.Classes); err != nil {
		return err
	}
	rows := len(m.Classes)
	if rows == 2 {
		rows = 1
	}
	n := m.NumFeatures()
	if n == 0 {
		return errors.New("empty coef")
	}
	if err := checkMatrix("coef", m.Coef, rows, n); err != nil {
		return err
	}
	if len(m.Intercept) != rows {
		return fmt.Errorf("%w: %d intercepts for %d coef rows", ErrShape, len(m.Intercept), rows)
	}
	return m.checkNames(n)
}

// Predict picks classes[1] when the binary decision value is positive, or the
// class with the largest decision value otherwise.
func (m *LogisticRegression) Predict(x []float64) (int, error) {
	if err := checkWidth(x, m.NumFeatures()); err != nil {
		return 0, err
	}

	scores := make([]float64, len(m.Coef))
	for i, row := range m.Coef {
		scores[i] = dot(row, x) + m.Intercept[i]
	}

	if len(scores) == 1 {
		if scores[0] > 0 {
			return m.Classes[1], nil
		}
		return m.Classes[0], nil
	}
	return m.Classes[argmax(scores)], nil
}
