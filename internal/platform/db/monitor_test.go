package db

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	calls atomic.Int32
	err   error
}

func (p *fakePinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return p.err
}

func TestNewHealthMonitor_DefaultsInterval(t *testing.T) {
	m := NewHealthMonitor(&fakePinger{}, 0)
	require.Equal(t, 30*time.Second, m.interval)
	require.False(t, m.running())
}

func TestHealthMonitor_Check(t *testing.T) {
	ok := &fakePinger{}
	require.NoError(t, NewHealthMonitor(ok, time.Second).Check(context.Background()))

	down := &fakePinger{err: errors.New("connection refused")}
	require.EqualError(t, NewHealthMonitor(down, time.Second).Check(context.Background()), "connection refused")
}

func TestHealthMonitor_StartPingsImmediately(t *testing.T) {
	p := &fakePinger{}
	m := NewHealthMonitor(p, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, m.Start(ctx))
	require.Eventually(t, func() bool { return p.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, m.Shutdown())
}

func TestHealthMonitor_ContextCancelShutsDown(t *testing.T) {
	m := NewHealthMonitor(&fakePinger{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, m.Start(ctx))
	require.True(t, m.running())

	cancel()

	require.Eventually(t, func() bool { return !m.running() }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, m.Shutdown())
}
