package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// KNeighbors is a fitted k-nearest-neighbours classifier holding its training samples.
type KNeighbors struct {
	meta
	NNeighbors int         `json:"n_neighbors"`
	Weights    string      `json:"weights"`
	P          float64     `json:"p"`
	FitX       [][]float64 `json:"fit_X"`
	FitY       []int       `json:"fit_y"`
	Classes    []int       `json:"classes"`

	classIndex map[int]int
}

func (m *KNeighbors) Kind() Kind { return KindKNeighbors }

func (m *KNeighbors) NumFeatures() int {
	if len(m.FitX) == 0 {
		return 0
	}
	return len(m.FitX[0])
}

func (m *KNeighbors) validate() error {
	if err := checkClasses(m.Classes); err != nil {
		return err
	}
	switch m.Weights {
	case "":
		m.Weights = "uniform"
	case "uniform", "distance":
	default:
		return fmt.Errorf("unsupported weights %q", m.Weights)
	}
	if m.P == 0 {
		m.P = 2
	}
	if m.P < 1 {
		return fmt.Errorf("minkowski p must be >= 1, got %v", m.P)
	}

	n := m.NumFeatures()
	if n == 0 {
		return errors.New("no fit samples")
	}
	if err := checkMatrix("fit_X", m.FitX, len(m.FitX), n); err != nil {
		return err
	}
	if len(m.FitY) != len(m.FitX) {
		return fmt.Errorf("%w: %d labels for %d samples", ErrShape, len(m.FitY), len(m.FitX))
	}
	if m.NNeighbors <= 0 || m.NNeighbors > len(m.FitX) {
		return fmt.Errorf("n_neighbors %d outside 1..%d", m.NNeighbors, len(m.FitX))
	}

	m.classIndex = make(map[int]int, len(m.Classes))
	for i, c := range m.Classes {
		m.classIndex[c] = i
	}
	for _, y := range m.FitY {
		if _, ok := m.classIndex[y]; !ok {
			return fmt.Errorf("fit label %d is not a known class", y)
		}
	}
	return m.checkNames(n)
}

type neighbor struct {
	dist  float64
	class int
}

// Predict votes among the NNeighbors closest samples. Equal distances keep
// training order and tied votes go to the lowest class index.
func (m *KNeighbors) Predict(x []float64) (int, error) {
	if err := checkWidth(x, m.NumFeatures()); err != nil {
		return 0, err
	}

	neighbors := make([]neighbor, len(m.FitX))
	for i, sample := range m.FitX {
		neighbors[i] = neighbor{dist: minkowski(sample, x, m.P), class: m.classIndex[m.FitY[i]]}
	}
	sort.SliceStable(neighbors, func(i, j int) bool { return neighbors[i].dist < neighbors[j].dist })
	nearest := neighbors[:m.NNeighbors]

	votes := make([]float64, len(m.Classes))
	switch m.Weights {
	case "distance":
		// exact matches take all the weight
		exact := false
		for _, nb := range nearest {
			if nb.dist == 0 {
				votes[nb.class]++
				exact = true
			}
		}
		if !exact {
			for _, nb := range nearest {
				votes[nb.class] += 1 / nb.dist
			}
		}
	default:
		for _, nb := range nearest {
			votes[nb.class]++
		}
	}
	return m.Classes[argmax(votes)], nil
}

func minkowski(a, b []float64, p float64) float64 {
	var s float64
	switch p {
	case 1:
		for i := range a {
			s += math.Abs(a[i] - b[i])
		}
		return s
	case 2:
		for i := range a {
			d := a[i] - b[i]
			s += d * d
		}
		return math.Sqrt(s)
	default:
		for i := range a {
			s += math.Pow(math.Abs(a[i]-b[i]), p)
		}
		return math.Pow(s, 1/p)
	}
}
