package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_PerClient(t *testing.T) {
	l := newClientLimiter(1, 1)
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"), "buckets are per client")

	now = now.Add(time.Second)
	assert.True(t, l.allow("10.0.0.1"), "bucket refills")
}

func TestClientLimiter_EvictsIdleClients(t *testing.T) {
	l := newClientLimiter(1, 1)
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.allow("10.0.0.1")
	l.allow("10.0.0.2")
	assert.Equal(t, 2, l.size())

	now = now.Add(idleTTL + time.Second)
	l.allow("10.0.0.3")
	assert.Equal(t, 1, l.size())
}

func TestClientLimiter_Disabled(t *testing.T) {
	for _, rps := range []float64{0, -1} {
		l := newClientLimiter(rps, 0)
		for i := 0; i < 100; i++ {
			assert.True(t, l.allow("10.0.0.1"))
		}
		assert.Zero(t, l.size())
	}
}
