package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_WidthUnits(t *testing.T) {
	w := NewWindow(8)
	w.Resize(100)

	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 100, w.Columns())
	assert.Equal(t, 800, CurrentWidth(w))
	assert.True(t, IsNarrow(w, 900))
	assert.False(t, IsNarrow(w, 800))
}

func TestWindow_SubscribeUnsubscribe(t *testing.T) {
	w := NewWindow(1)

	var a, b []int
	subA := w.Subscribe(func(width int) { a = append(a, width) })
	subB := w.Subscribe(func(width int) { b = append(b, width) })
	require.Equal(t, 2, w.Listeners())

	w.Resize(10)
	subA.Unsubscribe()
	subA.Unsubscribe()
	assert.Equal(t, 1, w.Listeners(), "double unsubscribe must only remove its own handler")

	w.Resize(20)
	subB.Unsubscribe()
	assert.Zero(t, w.Listeners())

	assert.Equal(t, []int{10}, a)
	assert.Equal(t, []int{10, 20}, b)
}

func TestMonitor_InitialAndCrossing(t *testing.T) {
	w := NewWindow(1)
	w.Resize(1000)

	var changes []bool
	m := Mount(w, 900, func(narrow bool) { changes = append(changes, narrow) })
	defer m.Unmount()

	assert.False(t, m.Narrow())

	w.Resize(950)
	w.Resize(899)
	w.Resize(899)
	w.Resize(100)
	w.Resize(900)

	assert.Equal(t, []bool{true, false}, changes)
	assert.False(t, m.Narrow())
}

func TestMonitor_ThresholdIsExclusive(t *testing.T) {
	w := NewWindow(1)
	w.Resize(720)
	m := Mount(w, 720, nil)
	defer m.Unmount()
	assert.Equal(t, 720, m.Threshold())
	assert.True(t, m.Mounted())
	assert.False(t, m.Narrow())

	w.Resize(719)
	assert.True(t, m.Narrow())
}

func TestMonitor_RepeatedMountsLeaveNoListeners(t *testing.T) {
	w := NewWindow(8)

	for range 25 {
		m := Mount(w, 900, nil)
		assert.Equal(t, 1, w.Listeners())
		m.Unmount()
		m.Unmount()
		assert.False(t, m.Mounted())
	}
	assert.Zero(t, w.Listeners())
}

func TestMonitor_UnmountStopsUpdates(t *testing.T) {
	w := NewWindow(1)
	w.Resize(1000)
	calls := 0
	m := Mount(w, 900, func(bool) { calls++ })
	m.Unmount()

	w.Resize(10)
	assert.Zero(t, calls)
	assert.False(t, m.Narrow())
}

func TestMonitor_NilSafe(t *testing.T) {
	var m *Monitor
	assert.False(t, m.Narrow())
	assert.False(t, m.Mounted())
	m.Unmount()
}
