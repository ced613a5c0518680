// Package format turns an augmented patch.Store into training datasets:
// flat feature vectors paired with one-hot category labels, shuffled and
// split into train and validation parts.
//
// Label layout: one slot per category of the domain, in
// patch.CategoriesOf order, so Bright is [1 0 0 0] and Short is [0 0 0 1].
package format

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/timbretag/patch"
)

// DefaultTrainFraction is the share of samples kept for training.
const DefaultTrainFraction = 0.8

// ErrBadFraction indicates a train fraction outside (0,1).
var ErrBadFraction = errors.New("format: train fraction must be in (0,1)")

// Split names the two parts of a split dataset.
type Split string

const (
	Train    Split = "train"
	Validate Split = "validate"
)

// Sample is one labelled feature vector.
type Sample struct {
	Category patch.Category
	Features patch.Vector
	Label    []float64
}

// Dataset is the flattened content of one domain.
type Dataset struct {
	Domain  patch.Domain
	Samples []Sample
}

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Flatten copies every vector of d's categories into a dataset, category by
// category in pipeline order. The store is not modified.
func Flatten(store *patch.Store, d patch.Domain) Dataset {
	ds := Dataset{Domain: d}
	if store == nil {
		return ds
	}
	ds.Samples = make([]Sample, 0, store.Total(d))
	for _, c := range patch.CategoriesOf(d) {
		for _, v := range store.Vectors(c) {
			ds.Samples = append(ds.Samples, Sample{
				Category: c,
				Features: v.Clone(),
				Label:    OneHot(c),
			})
		}
	}
	return ds
}

// OneHot returns the label of c within its domain.
func OneHot(c patch.Category) []float64 {
	l := make([]float64, len(patch.CategoriesOf(c.Domain())))
	l[c.Index()] = 1
	return l
}

// Len returns the number of samples.
func (ds Dataset) Len() int { return len(ds.Samples) }

// Features returns the feature matrix, one row per sample.
func (ds Dataset) Features() [][]float64 {
	out := make([][]float64, len(ds.Samples))
	for i, s := range ds.Samples {
		out[i] = s.Features
	}
	return out
}

// Labels returns the label matrix, aligned with Features.
func (ds Dataset) Labels() [][]float64 {
	out := make([][]float64, len(ds.Samples))
	for i, s := range ds.Samples {
		out[i] = s.Label
	}
	return out
}

// Counts returns the number of samples per category.
func (ds Dataset) Counts() map[patch.Category]int {
	out := make(map[patch.Category]int)
	for _, s := range ds.Samples {
		out[s.Category]++
	}
	return out
}

// Shuffle permutes the samples in place. Features and labels move together.
func (ds *Dataset) Shuffle(r Shuffler) {
	r.Shuffle(len(ds.Samples), func(i, j int) {
		ds.Samples[i], ds.Samples[j] = ds.Samples[j], ds.Samples[i]
	})
}

// Split cuts the dataset into a leading train part holding
// floor(n·trainFraction) samples and a validation part holding the rest.
// Both parts share samples with ds.
//
// Errors:
//   - ErrBadFraction: trainFraction not in (0,1).
func (ds Dataset) Split(trainFraction float64) (train, validate Dataset, err error) {
	if math.IsNaN(trainFraction) || trainFraction <= 0 || trainFraction >= 1 {
		return Dataset{}, Dataset{}, fmt.Errorf("%w: %v", ErrBadFraction, trainFraction)
	}
	cut := int(math.Floor(float64(len(ds.Samples)) * trainFraction))
	train = Dataset{Domain: ds.Domain, Samples: ds.Samples[:cut:cut]}
	validate = Dataset{Domain: ds.Domain, Samples: ds.Samples[cut:]}
	return train, validate, nil
}
