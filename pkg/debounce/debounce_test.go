package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 20 * time.Millisecond

// awaitSettled reads one settled value or fails the test
func awaitSettled(t *testing.T, d *Debouncer[string]) string {
	t.Helper()
	select {
	case v := <-d.Settled():
		return v
	case <-time.After(time.Second):
		t.Fatal("no settled value arrived")
		return ""
	}
}

func TestDebouncer_InitialValue(t *testing.T) {
	d := New("start", testDelay)
	defer d.Stop()

	assert.Equal(t, "start", d.Value())
}

func TestDebouncer_SettlesAfterQuietPeriod(t *testing.T) {
	d := New("", testDelay)
	defer d.Stop()

	d.Set("hello")

	assert.Equal(t, "hello", awaitSettled(t, d))
	assert.Equal(t, "hello", d.Value())
}

func TestDebouncer_OnlyLastOfBurstSettles(t *testing.T) {
	d := New("", testDelay)
	defer d.Stop()

	// Rapid keystrokes: each Set lands well inside the quiet period
	d.Set("r")
	d.Set("re")
	d.Set("rep")
	d.Set("report")

	assert.Equal(t, "report", awaitSettled(t, d))

	// The intermediate values were cancelled; nothing else arrives
	select {
	case v := <-d.Settled():
		t.Fatalf("unexpected extra settlement: %q", v)
	case <-time.After(4 * testDelay):
	}
	assert.Equal(t, "report", d.Value())
}

func TestDebouncer_LatestWinsOnUnconsumedDelivery(t *testing.T) {
	d := New("", testDelay)
	defer d.Stop()

	// Let two settlements complete without a reader in between
	d.Set("first")
	time.Sleep(4 * testDelay)
	d.Set("second")
	time.Sleep(4 * testDelay)

	assert.Equal(t, "second", awaitSettled(t, d))
	assert.Equal(t, "second", d.Value())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := New("kept", testDelay)

	d.Set("discarded")
	d.Stop()
	time.Sleep(4 * testDelay)

	assert.Equal(t, "kept", d.Value())

	// The channel is closed, not fed: a reader sees end-of-stream
	// rather than the cancelled value
	v, ok := <-d.Settled()
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestDebouncer_StopUnblocksReader(t *testing.T) {
	d := New("", testDelay)

	done := make(chan bool, 1)
	go func() {
		_, ok := <-d.Settled()
		done <- ok
	}()

	d.Stop()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("reader still blocked after Stop")
	}

	// Stopping again must not panic on the closed channel
	d.Stop()
}

func TestDebouncer_SetAfterStopIsIgnored(t *testing.T) {
	d := New("kept", testDelay)
	d.Stop()

	d.Set("ignored")
	time.Sleep(4 * testDelay)

	assert.Equal(t, "kept", d.Value())
}

func TestDebouncer_NonPositiveDelayUsesDefault(t *testing.T) {
	d := New(0, -1)
	defer d.Stop()

	require.Equal(t, DefaultDelay, d.delay)
}
