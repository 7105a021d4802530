// Package classifier loads a trained multinomial naive-Bayes artifact and
// exposes it as a text→category predictor. Training the artifact is a
// separate pipeline; this package only consumes its JSON export. A missing
// artifact is not an error for the service: classification then falls back
// to its keyword tiers.
package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

// classWeights holds the per-class parameters of the exported model.
type classWeights struct {
	LogPrior      float64            `json:"log_prior"`
	TokenLogProbs map[string]float64 `json:"token_log_probs"`
	UnseenLogProb float64            `json:"unseen_log_prob"`
}

type artifact struct {
	Classes map[string]classWeights `json:"classes"`
}

// Model scores a query against each exported class and returns the best
// label. It is immutable after load and safe for concurrent use.
type Model struct {
	classes map[string]classWeights
	order   []string
}

// Load reads a model artifact from disk.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classifier artifact: %w", err)
	}
	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("parse classifier artifact: %w", err)
	}
	if len(art.Classes) == 0 {
		return nil, fmt.Errorf("classifier artifact %s has no classes", path)
	}

	order := make([]string, 0, len(art.Classes))
	for label := range art.Classes {
		order = append(order, label)
	}
	sort.Strings(order)

	return &Model{classes: art.Classes, order: order}, nil
}

// Predict returns the highest-scoring category for the text. Ties resolve
// to the lexicographically first label so results stay deterministic.
func (m *Model) Predict(text string) (domain.Category, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return "", fmt.Errorf("empty query")
	}

	bestLabel := ""
	bestScore := 0.0
	for _, label := range m.order {
		weights := m.classes[label]
		score := weights.LogPrior
		for _, token := range tokens {
			if lp, ok := weights.TokenLogProbs[token]; ok {
				score += lp
			} else {
				score += weights.UnseenLogProb
			}
		}
		if bestLabel == "" || score > bestScore {
			bestLabel = label
			bestScore = score
		}
	}
	return domain.Category(bestLabel), nil
}
