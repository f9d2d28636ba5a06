package api

import "time"

// linearBackOff yields base, 2×base, 3×base, ... so retry timing is exactly
// predictable from the attempt number.
type linearBackOff struct {
	base    time.Duration
	attempt int
}

func newLinearBackOff(base time.Duration) *linearBackOff {
	return &linearBackOff{base: base}
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.base
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}
