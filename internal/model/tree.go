package model

import (
	"errors"
	"fmt"
)

const leaf = -1

// DecisionTree is a fitted tree in flat array form: node i splits on
// Feature[i] at Threshold[i] and is a leaf when ChildrenLeft[i] is -1.
type DecisionTree struct {
	meta
	NFeatures     int         `json:"n_features_in"`
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
	Classes       []int       `json:"classes"`
}

func (t *DecisionTree) Kind() Kind       { return KindDecisionTree }
func (t *DecisionTree) NumFeatures() int { return t.NFeatures }

func (t *DecisionTree) validate() error {
	if err := checkClasses(t.Classes); err != nil {
		return err
	}
	if t.NFeatures <= 0 {
		return errors.New("n_features_in must be positive")
	}

	nodes := len(t.ChildrenLeft)
	if nodes == 0 {
		return errors.New("empty tree")
	}
	if len(t.ChildrenRight) != nodes || len(t.Feature) != nodes || len(t.Threshold) != nodes {
		return fmt.Errorf("%w: tree arrays disagree on node count", ErrShape)
	}
	if err := checkMatrix("value", t.Value, nodes, len(t.Classes)); err != nil {
		return err
	}

	for i := 0; i < nodes; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf {
			if r != leaf {
				return fmt.Errorf("node %d has a right child but no left child", i)
			}
			continue
		}
		if l <= i || l >= nodes || r <= i || r >= nodes {
			return fmt.Errorf("node %d has out of range children %d, %d", i, l, r)
		}
		if f := t.Feature[i]; f < 0 || f >= t.NFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d", ErrShape, i, f)
		}
	}
	return t.checkNames(t.NFeatures)
}

// Predict walks from the root, going left while x[feature] <= threshold, and
// returns the majority class of the leaf it lands on.
func (t *DecisionTree) Predict(x []float64) (int, error) {
	if err := checkWidth(x, t.NFeatures); err != nil {
		return 0, err
	}

	// children always have larger indices than their parent, so the walk terminates
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Classes[argmax(t.Value[node])], nil
}
