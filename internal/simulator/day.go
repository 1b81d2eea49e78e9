package simulator

import "sync"

// DayController gates trip admission around the day boundary. While a day
// is open, ActivateTrip admits work and bumps the in-flight counter;
// CloseDay raises the ending flag so no new trips start, then blocks on a
// condition variable until the counter drains to zero. Settlement and
// reporting therefore never observe an in-flight trip.
type DayController struct {
	mu       sync.Mutex
	quiet    *sync.Cond
	ending   bool
	finished bool
	active   int
	day      int
}

// A fresh controller admits nothing until the first OpenDay.
func NewDayController() *DayController {
	d := &DayController{ending: true}
	d.quiet = sync.NewCond(&d.mu)
	return d
}

// OpenDay clears the ending flag and advances the day counter. Actors
// blocked on a closed day are woken so they can retry.
func (d *DayController) OpenDay() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ending = false
	d.day++
	d.quiet.Broadcast()
	return d.day
}

// ActivateTrip admits a new trip unless the day is ending or the run has
// finished. Every true return must be paired with a DeactivateTrip.
func (d *DayController) ActivateTrip() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ending || d.finished {
		return false
	}
	d.active++
	return true
}

// DeactivateTrip retires an in-flight trip and wakes the closer once the
// last one drains.
func (d *DayController) DeactivateTrip() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active--
	if d.active == 0 {
		d.quiet.Broadcast()
	}
}

// CloseDay stops admission and blocks until every in-flight trip has
// deactivated. On return the active counter is zero and stays zero until
// the next OpenDay.
func (d *DayController) CloseDay() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ending = true
	for d.active > 0 {
		d.quiet.Wait()
	}
}

// WaitForOpen blocks until the current day accepts trips again, or the
// run has finished. Returns false once finished.
func (d *DayController) WaitForOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.ending && !d.finished {
		d.quiet.Wait()
	}
	return !d.finished
}

// Finish permanently stops admission and releases any waiting actors.
func (d *DayController) Finish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finished = true
	d.quiet.Broadcast()
}

func (d *DayController) Finished() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.finished
}

func (d *DayController) Day() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.day
}

func (d *DayController) ActiveTrips() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}
