package utils

import "time"

// Clock abstracts time.Now and blocking waits so time-dependent logic
// (fallback event ids, settling delays) can be pinned in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

func (s SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// MockClock returns a fixed time and records requested sleeps instead of
// blocking.
type MockClock struct {
	FixedNow time.Time
	Slept    time.Duration
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) Sleep(d time.Duration) {
	m.Slept += d
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
