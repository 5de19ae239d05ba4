package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how many operations of a replay are done.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
	Rejected  uint64    `json:"rejected"`
}

// IncrementFinished counts operations that completed.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// IncrementRejected counts operations that completed but were rejected by the
// MMU. Rejected operations are also finished.
func (b *ProgressBar) IncrementRejected(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
	b.Rejected += amount
}

// Fraction returns the finished share of the total, 1 for an empty bar.
func (b *ProgressBar) Fraction() float64 {
	b.Lock()
	defer b.Unlock()

	if b.Total == 0 {
		return 1
	}

	return float64(b.Finished) / float64(b.Total)
}
