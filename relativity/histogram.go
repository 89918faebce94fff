package relativity

import (
	"errors"
	"fmt"
	"sync"
)

// Category is the decoded response to a challenge.
type Category uint8

const (
	CategoryZero Category = iota
	CategoryOne
	CategoryTwo
	// CategoryUnknown means no candidate matched while decoding.
	CategoryUnknown
)

// NumCategories is the number of slots in a Histogram.
const NumCategories = 4

var ErrInvalidCategory = errors.New("invalid response category")

func (c Category) Valid() bool {
	return c < NumCategories
}

func (c Category) String() string {
	switch c {
	case CategoryZero, CategoryOne, CategoryTwo:
		return fmt.Sprintf("%d", uint8(c))
	case CategoryUnknown:
		return "unknown"
	}
	return fmt.Sprintf("invalid(%d)", uint8(c))
}

// Histogram counts responses per category. It is safe for concurrent use.
type Histogram struct {
	mu     sync.Mutex
	counts [NumCategories]uint64
}

// NewHistogram returns a histogram with every category at zero.
func NewHistogram() *Histogram {
	return &Histogram{}
}

// FromCounts returns a histogram holding the given counts.
func FromCounts(counts [NumCategories]uint64) *Histogram {
	return &Histogram{counts: counts}
}

// Process records one response.
func (h *Histogram) Process(c Category) error {
	if !c.Valid() {
		return ErrInvalidCategory
	}
	h.mu.Lock()
	h.counts[c]++
	h.mu.Unlock()
	return nil
}

// ProcessChallengeResponse records response in h.
func ProcessChallengeResponse(h *Histogram, response Category) error {
	return h.Process(response)
}

func (h *Histogram) Count(c Category) uint64 {
	if !c.Valid() {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[c]
}

// Counts returns a snapshot of all counts.
func (h *Histogram) Counts() [NumCategories]uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts
}

// Total returns the number of recorded responses.
func (h *Histogram) Total() uint64 {
	var total uint64
	for _, n := range h.Counts() {
		total += n
	}
	return total
}

func (h *Histogram) String() string {
	c := h.Counts()
	return fmt.Sprintf("{0:%d 1:%d 2:%d 3:%d}", c[0], c[1], c[2], c[3])
}
