package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualRunsInDueOrder(t *testing.T) {
	v := NewVirtual()
	var got []string

	v.After(300*time.Millisecond, func() { got = append(got, "c") })
	v.After(100*time.Millisecond, func() { got = append(got, "a") })
	v.After(200*time.Millisecond, func() { got = append(got, "b") })

	v.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 2, v.Pending())

	v.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 300*time.Millisecond, v.Now())
}

func TestVirtualTiesKeepSchedulingOrder(t *testing.T) {
	v := NewVirtual()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		v.After(0, func() { got = append(got, i) })
	}
	v.Advance(0)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestVirtualNestedScheduling(t *testing.T) {
	v := NewVirtual()
	var at []time.Duration

	v.After(100*time.Millisecond, func() {
		at = append(at, v.Now())
		v.After(50*time.Millisecond, func() {
			at = append(at, v.Now())
		})
	})

	v.Advance(200 * time.Millisecond)
	require.Len(t, at, 2)
	assert.Equal(t, 100*time.Millisecond, at[0])
	assert.Equal(t, 150*time.Millisecond, at[1])
	assert.Equal(t, 200*time.Millisecond, v.Now())
}

func TestVirtualFlush(t *testing.T) {
	v := NewVirtual()
	ran := 0
	v.After(time.Second, func() { ran++ })
	v.After(2*time.Second, func() { ran++ })

	elapsed := v.Flush()
	assert.Equal(t, 2, ran)
	assert.Equal(t, 2*time.Second, elapsed)
	assert.Zero(t, v.Pending())
}

func TestVirtualNegativeDelay(t *testing.T) {
	v := NewVirtual()
	ran := false
	v.After(-time.Second, func() { ran = true })
	v.Advance(0)
	assert.True(t, ran)
}
