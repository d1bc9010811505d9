package model

import (
	"errors"
	"fmt"
)

// StandardScaler standardizes features with the mean and scale captured at fit time.
type StandardScaler struct {
	meta
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Kind() Kind       { return KindStandardScaler }
func (s *StandardScaler) NumFeatures() int { return len(s.Mean) }

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return errors.New("empty mean")
	}
	if len(s.Scale) != len(s.Mean) {
		return fmt.Errorf("%w: %d scale values for %d means", ErrShape, len(s.Scale), len(s.Mean))
	}
	return s.checkNames(len(s.Mean))
}

// Transform returns (x - mean) / scale. A zero scale is treated as 1, matching
// how constant columns are handled at fit time.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(x, len(s.Mean)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}
