package tetris

import (
	"sync"
	"time"
)

// MockTicker is a mock implementation of the Ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// SequenceRandom replays values in order, starting over when they run out.
type SequenceRandom struct {
	values []int
	next   int
}

func NewSequenceRandom(values ...int) *SequenceRandom {
	return &SequenceRandom{values: values}
}

func (s *SequenceRandom) IntN(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

// ShapeRandom returns a Random that always drafts the given shape in pink.
func ShapeRandom(shape Shape) *SequenceRandom {
	for i, s := range shapes {
		if s == shape {
			return NewSequenceRandom(i, 0)
		}
	}
	return NewSequenceRandom(0, 0)
}

// NewTestGame creates a started default game that only drafts the given shape.
func NewTestGame(shape Shape) *Game {
	g := NewGame(&Options{Random: ShapeRandom(shape)})
	g.Start(0)
	return g
}
