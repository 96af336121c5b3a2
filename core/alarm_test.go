package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlarmUpdateWakeTime(t *testing.T) {
	cases := []struct {
		name   string
		wake   uint16
		period uint16
		want   uint16
	}{
		{"simple", 100, 50, 150},
		{"at mask", 0x7FFF, 1, 0},
		{"straddle", 0x7FFE, 5, 3},
		{"full period wrap", 0x7000, 0x4000, 0x3000},
		{"zero stays", 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAlarm(tc.period, 0)
			a.SetWakeTime(tc.wake)
			require.Equal(t, tc.want, a.UpdateWakeTime())
			require.Equal(t, tc.want, a.WakeTime())
		})
	}
}

func TestAlarmSetWakeTimeMasked(t *testing.T) {
	a := NewAlarm(10, 0)
	a.SetWakeTime(0xFFFF)
	require.Equal(t, uint16(0x7FFF), a.WakeTime())
	a.ModifyWakeTime(0x8003)
	require.Equal(t, uint16(0x0003), a.WakeTime())
}

func TestAlarmExpireInfinite(t *testing.T) {
	fired := 0
	a := NewAlarm(10, 0)
	a.SetCallback(func(any) { fired++ })

	// The fire-forever sentinel never reports exhaustion.
	for i := 0; i < 100; i++ {
		require.True(t, a.Expire())
	}
	require.Equal(t, 100, fired)
	require.Equal(t, uint16(0), a.Remaining())
}

func TestAlarmExpireCountdown(t *testing.T) {
	fired := 0
	a := NewAlarm(10, 3)
	a.SetCallback(func(any) { fired++ })

	require.True(t, a.Expire())
	require.Equal(t, uint16(2), a.Remaining())
	require.True(t, a.Expire())
	require.Equal(t, uint16(1), a.Remaining())

	// The continue signal goes false exactly on the 1 -> 0 transition.
	require.False(t, a.Expire())
	require.Equal(t, uint16(0), a.Remaining())
	require.Equal(t, 3, fired)
}

func TestAlarmExpireSingleShot(t *testing.T) {
	a := NewAlarm(10, 1)
	fired := 0
	a.SetCallback(func(any) { fired++ })

	require.False(t, a.Expire())
	require.Equal(t, 1, fired)
}

func TestAlarmArgPassthrough(t *testing.T) {
	type payload struct{ n int }
	p := &payload{n: 42}

	var got any
	a := NewAlarm(10, 0)
	a.SetCallback(func(arg any) { got = arg })
	a.SetArg(p)

	a.Expire()
	require.Same(t, p, got)
}

func TestAlarmModify(t *testing.T) {
	a := NewAlarm(10, 2)
	a.ModifyPeriod(20)
	a.ModifyRepeats(5)

	var hit bool
	a.ModifyCallback(func(any) { hit = true })
	a.ModifyArg("x")

	require.Equal(t, uint16(20), a.Period())
	require.Equal(t, uint16(5), a.Remaining())
	a.Expire()
	require.True(t, hit)
}
