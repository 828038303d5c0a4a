package scheduler

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

type countingSweeper struct {
	calls int32
}

func (c *countingSweeper) SweepCache() int {
	atomic.AddInt32(&c.calls, 1)
	return 2
}

func TestStart_RejectsDoubleStart(t *testing.T) {
	svc := NewService(&countingSweeper{}, arbor.NewLogger())

	require.NoError(t, svc.Start("*/5 * * * *"))
	defer svc.Stop()

	assert.Error(t, svc.Start("*/5 * * * *"))
}

func TestStart_RejectsInvalidExpression(t *testing.T) {
	svc := NewService(&countingSweeper{}, arbor.NewLogger())

	assert.Error(t, svc.Start("not a cron expression"))
}

func TestStop_IsIdempotent(t *testing.T) {
	svc := NewService(&countingSweeper{}, arbor.NewLogger())

	require.NoError(t, svc.Start(""))
	svc.Stop()
	svc.Stop()
}

func TestSweep_CallsSweeper(t *testing.T) {
	sweeper := &countingSweeper{}
	svc := NewService(sweeper, arbor.NewLogger())

	svc.sweep()
	svc.sweep()

	assert.Equal(t, int32(2), atomic.LoadInt32(&sweeper.calls))
}
