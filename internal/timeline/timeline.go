package timeline

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrLengthMismatch  = errors.New("timeline: start and end times differ in length")
	ErrInvalidInterval = errors.New("timeline: interval end must be after its start")
)

// Index maps a continuous time value to the segment containing it.
// Segments are half-open [start, end) intervals; times falling in a gap
// between segments resolve to no segment at all.
type Index struct {
	starts []float64
	ends   []float64

	// Last-query memo. Guarded so concurrent readers never observe a
	// torn entry; the arrays themselves are immutable after construction.
	mu       sync.Mutex
	memoTime float64
	memoIdx  int
	hasMemo  bool
}

// NewIndex builds an Index from parallel start/end arrays. Starts are
// expected in ascending order.
func NewIndex(starts, ends []float64) (*Index, error) {
	if len(starts) != len(ends) {
		return nil, fmt.Errorf("%w: %d starts, %d ends", ErrLengthMismatch, len(starts), len(ends))
	}
	for i := range starts {
		if ends[i] <= starts[i] {
			return nil, fmt.Errorf("%w: segment %d is [%v, %v)", ErrInvalidInterval, i, starts[i], ends[i])
		}
	}
	return &Index{
		starts: append([]float64(nil), starts...),
		ends:   append([]float64(nil), ends...),
	}, nil
}

// Len returns the number of segments.
func (x *Index) Len() int { return len(x.starts) }

// Start returns the start time of segment i.
func (x *Index) Start(i int) float64 { return x.starts[i] }

// End returns the end time of segment i.
func (x *Index) End(i int) float64 { return x.ends[i] }

// Duration returns the latest segment end, or 0 for an empty index.
// Ends are not required to be sorted, so every segment is considered.
func (x *Index) Duration() float64 {
	var max float64
	for _, end := range x.ends {
		if end > max {
			max = end
		}
	}
	return max
}

// Resolve returns the index of the segment with start <= time < end,
// or -1 when no segment contains time. Repeated queries at the same
// timestamp hit the memo and skip the search.
func (x *Index) Resolve(time float64) int {
	x.mu.Lock()
	if x.hasMemo && x.memoTime == time {
		idx := x.memoIdx
		x.mu.Unlock()
		return idx
	}
	x.mu.Unlock()

	idx := x.locate(time)

	x.mu.Lock()
	x.memoTime, x.memoIdx, x.hasMemo = time, idx, true
	x.mu.Unlock()
	return idx
}

// locate binary-searches the starts for the candidate segment and
// verifies containment against its end. No linear fallback: a time past
// the candidate's end is a gap.
func (x *Index) locate(time float64) int {
	i := sort.Search(len(x.starts), func(j int) bool { return x.starts[j] > time }) - 1
	if i < 0 || time >= x.ends[i] {
		return -1
	}
	return i
}
