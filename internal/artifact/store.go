// Package artifact loads the fitted scaler and classifiers once at startup
// and serves them read-only for the life of the process.
package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/Skufu/GlucoRisk/internal/model"
	"github.com/Skufu/GlucoRisk/internal/patient"
)

const scalerName = "scaler"

// Info describes one loaded artifact.
type Info struct {
	Key      ModelKey
	Name     string
	Kind     model.Kind
	Features int
}

// Store holds the scaler and the classifiers keyed by model. It is never
// mutated after Load returns, so it is safe for concurrent use.
type Store struct {
	scaler      model.Transformer
	classifiers map[ModelKey]model.Classifier
	info        []Info
}

// Load reads and decodes every artifact the manifest names. All artifacts are
// fetched concurrently; the first failure cancels the rest and is returned.
func Load(ctx context.Context, src Source, m Manifest, logger *slog.Logger) (*Store, error) {
	type loaded struct {
		info Info
		est  model.Estimator
	}
	results := make([]loaded, len(m.Models)+1)

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range m.Names() {
		i, name := i, name
		var key ModelKey
		if i > 0 {
			key = m.Models[i-1].Key
		}
		g.Go(func() error {
			est, err := loadOne(ctx, src, name)
			if err != nil {
				return err
			}
			results[i] = loaded{
				info: Info{Key: key, Name: name, Kind: est.Kind(), Features: est.NumFeatures()},
				est:  est,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Store{classifiers: make(map[ModelKey]model.Classifier, len(m.Models))}
	for i, r := range results {
		if i == 0 {
			scaler, ok := r.est.(model.Transformer)
			if !ok {
				return nil, &Error{Name: r.info.Name, Op: "load " + scalerName, Err: fmt.Errorf("%s is not a scaler", r.info.Kind)}
			}
			s.scaler = scaler
		} else {
			clf, ok := r.est.(model.Classifier)
			if !ok {
				return nil, &Error{Name: r.info.Name, Op: "load " + string(r.info.Key), Err: fmt.Errorf("%s is not a classifier", r.info.Kind)}
			}
			s.classifiers[r.info.Key] = clf
		}
		s.info = append(s.info, r.info)
		logger.Info("artifact loaded", "name", r.info.Name, "kind", r.info.Kind, "model", r.info.Key)
	}
	return s, nil
}

func loadOne(ctx context.Context, src Source, name string) (model.Estimator, error) {
	data, err := src.Read(ctx, name)
	if err != nil {
		return nil, &Error{Name: name, Op: "read", Err: err}
	}
	est, err := model.Decode(data)
	if err != nil {
		return nil, &Error{Name: name, Op: "decode", Err: err}
	}
	if err := checkFeatures(est); err != nil {
		return nil, &Error{Name: name, Op: "check features", Err: err}
	}
	return est, nil
}

// checkFeatures rejects artifacts fitted on a different column layout.
func checkFeatures(est model.Estimator) error {
	if n := est.NumFeatures(); n != patient.NumFeatures {
		return fmt.Errorf("%w: fitted on %d features, want %d", model.ErrShape, n, patient.NumFeatures)
	}
	names := est.FeatureNames()
	if len(names) > 0 && !slices.Equal(names, patient.FeatureNames[:]) {
		return fmt.Errorf("%w: feature order %v, want %v", model.ErrShape, names, patient.FeatureNames)
	}
	return nil
}

// Scaler returns the fitted scaler.
func (s *Store) Scaler() model.Transformer { return s.scaler }

// Classifier returns the classifier loaded for key.
func (s *Store) Classifier(key ModelKey) (model.Classifier, error) {
	clf, ok := s.classifiers[key]
	if !ok {
		return nil, &Error{Name: string(key), Op: "lookup", Err: ErrUnknownModel}
	}
	return clf, nil
}

// Keys lists the loaded model keys in form order.
func (s *Store) Keys() []ModelKey {
	var keys []ModelKey
	for _, k := range Keys() {
		if _, ok := s.classifiers[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Info describes every loaded artifact, scaler first.
func (s *Store) Info() []Info {
	return slices.Clone(s.info)
}
