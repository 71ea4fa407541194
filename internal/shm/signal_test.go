package shm

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func signalPair(t *testing.T) (producer, consumer *Signal) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "event")

	producer, err := CreateSignal(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = producer.Close() })

	consumer, err = AttachSignal(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = consumer.Close() })

	return producer, consumer
}

// TestSignal_TimesOut returns false when nothing was raised.
func TestSignal_TimesOut(t *testing.T) {
	t.Parallel()

	_, consumer := signalPair(t)

	start := time.Now()
	require.False(t, consumer.Wait(20*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

// TestSignal_AutoReset collapses several raises into a single wake.
func TestSignal_AutoReset(t *testing.T) {
	t.Parallel()

	producer, consumer := signalPair(t)

	producer.Set()
	producer.Set()
	producer.Set()

	require.True(t, consumer.Wait(time.Second))
	require.False(t, consumer.Wait(10*time.Millisecond))
}

// TestSignal_WakesBlockedWaiter wakes a waiter blocked in another goroutine.
func TestSignal_WakesBlockedWaiter(t *testing.T) {
	t.Parallel()

	producer, consumer := signalPair(t)

	done := make(chan bool, 1)

	go func() {
		done <- consumer.Wait(5 * time.Second)
	}()

	time.Sleep(20 * time.Millisecond)
	producer.Set()

	select {
	case got := <-done:
		require.True(t, got)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "waiter was not woken")
	}
}

// TestSignal_Closed turns Set and Wait into no-ops after Close.
func TestSignal_Closed(t *testing.T) {
	t.Parallel()

	producer, consumer := signalPair(t)

	require.NoError(t, consumer.Close())
	require.NoError(t, consumer.Close())

	producer.Set()
	require.False(t, consumer.Wait(time.Millisecond))
}
