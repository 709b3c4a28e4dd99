package lambert

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ChristopherRabotin/ode"
)

const (
	// StepSize is the default step size of propagation.
	StepSize = 10 * time.Second
)

var wg sync.WaitGroup

/* Handles the two body propagations. */

// TwoBody propagates an orbit under the sole attraction of its origin body.
// Its main purpose is confirming that a transfer returned by Solve actually
// coasts from the departure state to the arrival state in the requested time.
type TwoBody struct {
	Orbit                      *Orbit // As pointer because the orbit changes during propagation.
	StartDT, StopDT, CurrentDT time.Time
	step                       time.Duration // time step
	stopChan                   chan (bool)
	histChan                   chan<- (State)
	done, collided             bool
}

// State stores a dated orbit, as sent on the history channel.
type State struct {
	DT    time.Time
	Orbit Orbit
}

// NewTwoBody is the same as NewPreciseTwoBody with the default step size.
func NewTwoBody(o *Orbit, start, end time.Time, conf ExportConfig) *TwoBody {
	return NewPreciseTwoBody(o, start, end, StepSize, conf)
}

// NewPreciseTwoBody returns a new TwoBody propagation with a custom time step.
func NewPreciseTwoBody(o *Orbit, start, end time.Time, step time.Duration, conf ExportConfig) *TwoBody {
	if end.Before(start) {
		panic("cannot propagate backward in time")
	}
	// If no filename is provided, then no output will be written.
	var histChan chan (State)
	if !conf.IsUseless() {
		histChan = make(chan (State), 1000) // a 1k entry buffer
		wg.Add(1)
		go func() {
			defer wg.Done()
			StreamStates(conf, histChan)
		}()
	} else {
		histChan = nil
	}
	// Must switch to UTC as all ephemeris data is in UTC.
	if start.Location() != time.UTC {
		start = start.UTC()
	}
	if end.Location() != time.UTC {
		end = end.UTC()
	}

	tb := &TwoBody{o, start, end, start, step, make(chan (bool), 1), histChan, false, false}
	// Write the first data point.
	if histChan != nil {
		histChan <- State{tb.CurrentDT, *o}
	}
	return tb
}

// LogStatus reports the current propagation state.
func (tb *TwoBody) LogStatus() {
	logger.Log("level", "info", "subsys", "prop", "date", tb.CurrentDT, "orbit", tb.Orbit)
}

// PropagateUntil propagates until the given time is reached.
func (tb *TwoBody) PropagateUntil(dt time.Time) {
	tb.StopDT = dt
	tb.Propagate()
}

// Propagate starts the propagation.
func (tb *TwoBody) Propagate() {
	// Add a ticker status report based on the duration of the propagation.
	tb.LogStatus()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			if tb.done {
				break
			}
			tb.LogStatus()
		}
	}()
	ξInit := tb.Orbit.Energyξ()
	ode.NewRK4(0, tb.step.Seconds(), tb).Solve() // Blocking.
	tb.done = true
	duration := tb.CurrentDT.Sub(tb.StartDT)
	durStr := duration.String()
	if duration.Hours() > 24 {
		durStr += fmt.Sprintf(" (~%.3fd)", duration.Hours()/24)
	}
	logger.Log("level", "notice", "subsys", "prop", "status", "finished", "duration", durStr, "Δξ", math.Abs(tb.Orbit.Energyξ()-ξInit))
	tb.LogStatus()
	wg.Wait() // Don't return until we're done writing all the files.
}

// StopPropagation is used to stop the propagation before it is completed.
func (tb *TwoBody) StopPropagation() {
	tb.stopChan <- true
}

// Stop implements the stop call of the integrator. To stop the propagation, call StopPropagation().
func (tb *TwoBody) Stop(t float64) bool {
	select {
	case <-tb.stopChan:
		if tb.histChan != nil {
			close(tb.histChan)
		}
		return true // Stop because there is a request to stop.
	default:
		tb.CurrentDT = tb.CurrentDT.Add(tb.step)
		if tb.CurrentDT.Sub(tb.StopDT).Nanoseconds() > 0 {
			if tb.histChan != nil {
				close(tb.histChan)
			}
			return true // Stop, we've reached the end of the propagation.
		}
	}
	return false
}

// GetState returns the state for the integrator.
func (tb *TwoBody) GetState() (s []float64) {
	s = make([]float64, 4)
	R, V := tb.Orbit.RV()
	for i := 0; i < 2; i++ {
		s[i] = R[i]
		s[i+2] = V[i]
	}
	return
}

// SetState sets the updated state.
func (tb *TwoBody) SetState(t float64, s []float64) {
	if tb.histChan != nil {
		tb.histChan <- State{tb.CurrentDT, *tb.Orbit}
	}

	R := []float64{s[0], s[1]}
	V := []float64{s[2], s[3]}
	*tb.Orbit = *NewOrbitFromRV(R, V, tb.Orbit.Origin) // Deref is important.

	// Orbit sanity checks and warnings.
	if !tb.collided && tb.Orbit.RNorm() < tb.Orbit.Origin.Radius {
		tb.collided = true
		logger.Log("level", "critical", "subsys", "prop", "collided", tb.Orbit.Origin.Name, "dt", tb.CurrentDT, "r", tb.Orbit.RNorm(), "radius", tb.Orbit.Origin.Radius)
	} else if tb.collided && tb.Orbit.RNorm() > tb.Orbit.Origin.Radius*1.1 {
		// Now further from the 10% dead zone.
		tb.collided = false
		logger.Log("level", "critical", "subsys", "prop", "revived", tb.Orbit.Origin.Name, "dt", tb.CurrentDT)
	}
}

// Func is the integration function. Two body dynamics only.
func (tb *TwoBody) Func(t float64, f []float64) (fDot []float64) {
	fDot = make([]float64, 4) // init return vector
	bodyAcc := -tb.Orbit.Origin.μ / math.Pow(norm(f[0:2]), 3)
	// d\vec{R}/dt
	fDot[0] = f[2]
	fDot[1] = f[3]
	// d\vec{V}/dt
	fDot[2] = bodyAcc * f[0]
	fDot[3] = bodyAcc * f[1]
	return
}
