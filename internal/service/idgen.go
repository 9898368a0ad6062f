package service

import (
	"sync"
	"time"
)

// IDGenerator allocates task identifiers.
type IDGenerator interface {
	NextID() int64
}

// ClockIDGenerator hands out ids derived from the wall clock in Unix
// milliseconds. Ids are strictly increasing: a call landing in the same (or an
// earlier) millisecond as the previous one gets the previous id plus one.
type ClockIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

var _ IDGenerator = (*ClockIDGenerator)(nil)

// NewClockIDGenerator returns a generator reading time.Now.
func NewClockIDGenerator() *ClockIDGenerator {
	return &ClockIDGenerator{now: time.Now}
}

// NextID returns the next id.
func (g *ClockIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
