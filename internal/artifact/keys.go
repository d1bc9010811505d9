package artifact

import (
	"fmt"
	"strings"
)

// ModelKey names one of the selectable classifiers.
type ModelKey string

const (
	LogisticRegression      ModelKey = "Logistic Regression"
	DecisionTree            ModelKey = "Decision Tree"
	KNearestNeighbor        ModelKey = "K Nearest Neighbor"
	NaiveBayes              ModelKey = "Naive Bayes"
	SupportVectorClassifier ModelKey = "Support Vector Classifier"
)

// Keys returns every model key in the order the form lists them.
func Keys() []ModelKey {
	return []ModelKey{LogisticRegression, DecisionTree, KNearestNeighbor, NaiveBayes, SupportVectorClassifier}
}

var keyAliases = map[string]ModelKey{
	"lr":  LogisticRegression,
	"dt":  DecisionTree,
	"knn": KNearestNeighbor,
	"nb":  NaiveBayes,
	"svc": SupportVectorClassifier,
	"sv":  SupportVectorClassifier,
}

// ParseModelKey resolves a display name, ignoring case, hyphens and
// underscores, or one of the short aliases (lr, dt, knn, nb, svc).
func ParseModelKey(s string) (ModelKey, error) {
	norm := normalizeKey(s)
	if k, ok := keyAliases[norm]; ok {
		return k, nil
	}
	for _, k := range Keys() {
		if normalizeKey(string(k)) == norm {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

func normalizeKey(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}
