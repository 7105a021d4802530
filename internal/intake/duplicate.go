package intake

import (
	"context"
	"strings"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

// RecentLister provides the recent request history the duplicate check
// scans. Implemented by the request repository.
type RecentLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.Request, error)
}

// DuplicateDetector flags resubmissions by word-set overlap against the
// most recent requests on file. The check is advisory: it never blocks a
// submission, and a store read failure is reported as "no duplicate".
type DuplicateDetector struct {
	store     RecentLister
	window    int
	threshold float64
}

// NewDuplicateDetector builds a detector over the given history window.
func NewDuplicateDetector(store RecentLister, window int, threshold float64) *DuplicateDetector {
	if window <= 0 {
		window = 20
	}
	if threshold <= 0 {
		threshold = 0.6
	}
	return &DuplicateDetector{store: store, window: window, threshold: threshold}
}

// Check compares a normalized query against recent requests. For each
// candidate the overlap ratio is |old ∩ new| / max(|old|, 1) over
// whitespace-tokenized word sets; the first candidate above the threshold
// wins and its request id is returned.
func (d *DuplicateDetector) Check(ctx context.Context, query string) (bool, string) {
	recent, err := d.store.ListRecent(ctx, d.window)
	if err != nil {
		return false, ""
	}
	newWords := wordSet(query)
	for _, candidate := range recent {
		oldWords := wordSet(strings.ToLower(candidate.Query))
		if len(oldWords) == 0 {
			continue
		}
		if overlapRatio(oldWords, newWords) > d.threshold {
			return true, candidate.RequestID
		}
	}
	return false, ""
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}

func overlapRatio(old, new map[string]struct{}) float64 {
	shared := 0
	for w := range old {
		if _, ok := new[w]; ok {
			shared++
		}
	}
	denom := len(old)
	if denom < 1 {
		denom = 1
	}
	return float64(shared) / float64(denom)
}
