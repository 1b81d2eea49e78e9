package simulator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseDayWaitsForActiveTrips(t *testing.T) {
	d := NewDayController()
	d.OpenDay()

	for i := 0; i < 3; i++ {
		require.True(t, d.ActivateTrip())
	}

	closed := make(chan struct{})
	go func() {
		d.CloseDay()
		close(closed)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-closed:
		t.Fatal("day closed with trips still in flight")
	default:
	}

	for i := 0; i < 3; i++ {
		time.Sleep(5 * time.Millisecond)
		d.DeactivateTrip()
	}

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close never returned after the last trip drained")
	}
	assert.Equal(t, 0, d.ActiveTrips())
}

func TestActivateFailsWhileEnding(t *testing.T) {
	d := NewDayController()
	d.OpenDay()
	d.CloseDay()

	assert.False(t, d.ActivateTrip(), "no admission between close and the next open")

	d.OpenDay()
	assert.True(t, d.ActivateTrip())
	d.DeactivateTrip()
}

func TestWaitForOpenBlocksUntilNextDay(t *testing.T) {
	d := NewDayController()
	d.OpenDay()
	d.CloseDay()

	opened := make(chan bool, 1)
	go func() {
		opened <- d.WaitForOpen()
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-opened:
		t.Fatal("waiter released while the day was still ending")
	default:
	}

	d.OpenDay()
	select {
	case ok := <-opened:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("waiter never released after open")
	}
}

func TestFinishReleasesWaiters(t *testing.T) {
	d := NewDayController()
	d.OpenDay()
	d.CloseDay()

	released := make(chan bool, 1)
	go func() {
		released <- d.WaitForOpen()
	}()

	d.Finish()
	select {
	case ok := <-released:
		assert.False(t, ok, "finish reports no further days")
	case <-time.After(time.Second):
		t.Fatal("waiter never released after finish")
	}
	assert.False(t, d.ActivateTrip())
	assert.True(t, d.Finished())
}

func TestQuiescenceUnderLoad(t *testing.T) {
	d := NewDayController()
	d.OpenDay()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if !d.ActivateTrip() {
					return
				}
				time.Sleep(time.Millisecond)
				d.DeactivateTrip()
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	d.CloseDay()
	assert.Equal(t, 0, d.ActiveTrips(), "settlement point must observe zero in-flight trips")

	d.Finish()
	wg.Wait()
}
