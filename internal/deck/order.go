package deck

import (
	"math/rand"
	"time"

	"github.com/alice-yql/bearwithme/internal/model"
)

// Orderer produces randomized practice orderings.
type Orderer struct {
	rnd *rand.Rand
}

// NewOrderer returns an Orderer seeded with the current time.
func NewOrderer() *Orderer {
	return &Orderer{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// FocusStruggling orders words with a bias toward struggling and
// unpracticed ones: weighted sampling without replacement, the weight
// growing with the factor.
func (o *Orderer) FocusStruggling(words []model.Word, factor float64) []model.Word {
	if factor < 0 {
		factor = 0
	}
	remaining := make([]model.Word, len(words))
	copy(remaining, words)
	weights := make([]float64, len(remaining))
	total := 0.0
	for i, w := range remaining {
		weight := 1.0 + statusWeight(w)*factor
		weights[i] = weight
		total += weight
	}

	result := make([]model.Word, 0, len(remaining))
	for len(remaining) > 0 {
		r := o.rnd.Float64() * total
		acc := 0.0
		idx := 0
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, remaining[idx])
		total -= weights[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return result
}

func statusWeight(w model.Word) float64 {
	switch w.Status {
	case model.StatusStruggling:
		return 2.0
	case model.StatusNotStarted:
		return 1.0
	case model.StatusInProgress:
		return 0.5
	default:
		return 0.0
	}
}
