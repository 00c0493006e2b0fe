package cache

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var calls int32
	d := NewDebouncer(20*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDebouncer_SeparateBurstsRunSeparately(t *testing.T) {
	var calls int32
	d := NewDebouncer(10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	defer d.Stop()

	d.Trigger()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 },
		time.Second, 2*time.Millisecond)

	d.Trigger()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 },
		time.Second, 2*time.Millisecond)
}

func TestDebouncer_FlushRunsPendingCall(t *testing.T) {
	var calls int32
	d := NewDebouncer(time.Hour, func() { atomic.AddInt32(&calls, 1) })

	d.Flush()
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	d.Trigger()
	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	d.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDebouncer_StopRunsPendingAndRejectsNewTriggers(t *testing.T) {
	var calls int32
	d := NewDebouncer(time.Hour, func() { atomic.AddInt32(&calls, 1) })

	d.Trigger()
	d.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	d.Trigger()
	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
