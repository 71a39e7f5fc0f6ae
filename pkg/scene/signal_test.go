package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal_Order(t *testing.T) {
	var s signal[int]
	var got []string
	s.connect(func(v int) { got = append(got, "a") })
	s.connect(func(v int) { got = append(got, "b") })
	s.emit(1)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSignal_DisconnectDuringEmit(t *testing.T) {
	var s signal[int]
	var got []string
	var second func()
	s.connect(func(int) {
		got = append(got, "first")
		second()
	})
	second = s.connect(func(int) { got = append(got, "second") })
	s.connect(func(int) { got = append(got, "third") })

	s.emit(0)
	assert.Equal(t, []string{"first", "third"}, got)
	assert.Equal(t, 2, s.len())
}

func TestSignal_ConnectDuringEmitWaitsForNextEmit(t *testing.T) {
	var s signal[int]
	calls := 0
	s.connect(func(int) {
		s.connect(func(int) { calls++ })
	})
	s.emit(0)
	assert.Equal(t, 0, calls)
	s.emit(0)
	assert.Equal(t, 1, calls)
}

func TestSignal_ConnectUnique(t *testing.T) {
	var s signal[string]
	calls := 0
	d1 := s.connectUnique("k", func(string) { calls++ })
	d2 := s.connectUnique("k", func(string) { calls += 10 })
	s.emit("")
	assert.Equal(t, 1, calls)

	d2()
	s.emit("")
	assert.Equal(t, 1, calls, "both disconnectors refer to the keyed listener")
	d1()

	s.connectUnique("k", func(string) { calls += 100 })
	s.emit("")
	assert.Equal(t, 101, calls)

	s.disconnectKey("k")
	assert.Zero(t, s.len())
}

func TestSignal_Reset(t *testing.T) {
	var s signal[int]
	calls := 0
	disconnect := s.connect(func(int) { calls++ })
	s.reset()
	s.emit(0)
	disconnect()
	assert.Zero(t, calls)
	assert.Zero(t, s.len())
}

func TestGuard(t *testing.T) {
	var g guard
	assert.True(t, g.tryEnter())
	assert.True(t, g.active())
	assert.False(t, g.tryEnter())
	propagating{&g}.end()
	assert.False(t, g.active())
}
