package lambert

import (
	"fmt"
	"os"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ExportConfig configures the exporting of a propagation.
type ExportConfig struct {
	Filename     string
	Traj         bool
	AsCSV        bool
	Timestamp    bool
	Every        time.Duration         // Minimum simulation time between two exported states (zero keeps them all).
	CSVAppend    func(st State) string // Custom export (do not include leading comma)
	CSVAppendHdr func() string         // Header for the custom export
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.Traj && !c.AsCSV
}

// createTrajectoryFile returns a file which requires a defer close statement!
func createTrajectoryFile(filename string, stamped bool, stateDT time.Time) *os.File {
	config := lambertConfig()
	if stamped {
		t := time.Now()
		filename = fmt.Sprintf("%s/prop-%s-%d-%02d-%02dT%02d.%02d.%02d.xyv", config.outputDir, filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/prop-%s.xyv", config.outputDir, filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are <jd> <x> <y> <vel x> <vel y>
#   Time is a TDB Julian date
#   Units are those of the propagated orbit (km and km/s for the built in bodies)
#   Propagation time start (UTC): %s`, time.Now(), stateDT.UTC()))
	return f
}

// createElementsCSVFile returns a file which requires a defer close statement!
func createElementsCSVFile(filename string, conf ExportConfig, stateDT time.Time) *os.File {
	config := lambertConfig()
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/orbital-elements-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", config.outputDir, filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/orbital-elements-%s.csv", config.outputDir, filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are a, e, ω, ν. All angles are in degrees.
#   Propagation time start (UTC): %s
time,a,e,omega,nu,timeInHours,timeInDays`, time.Now(), stateDT.UTC()))
	if conf.CSVAppendHdr != nil {
		// Append the headers for the appended columns.
		f.WriteString("," + conf.CSVAppendHdr())
	}
	return f
}

// StreamStates streams the output of the channel to the files requested in
// the export configuration.
func StreamStates(conf ExportConfig, stateChan <-chan (State)) {
	// Read from channel.
	var prevStatePtr, firstStatePtr *State
	var fTraj, fAsCSV *os.File
	for {
		state, more := <-stateChan
		if more {
			if prevStatePtr == nil {
				firstStatePtr = &state
				if conf.Traj {
					fTraj = createTrajectoryFile(conf.Filename, conf.Timestamp, state.DT)
				}
				if conf.AsCSV {
					fAsCSV = createElementsCSVFile(conf.Filename, conf, state.DT)
				}
			} else if state.DT.Sub(prevStatePtr.DT) < conf.Every {
				// Skip states which are closer than the requested sampling.
				continue
			}
			prevStatePtr = &state
			if conf.Traj {
				R, V := state.Orbit.R(), state.Orbit.V()
				asTxt := fmt.Sprintf("%f %f %f %f %f", julian.TimeToJD(state.DT), R[0], R[1], V[0], V[1])
				if _, err := fTraj.WriteString("\n" + asTxt); err != nil {
					panic(err)
				}
			}
			if conf.AsCSV {
				a, e, ω, ν, _ := state.Orbit.Elements()
				deltaT := state.DT.Sub(firstStatePtr.DT)
				asTxt := fmt.Sprintf("%s,%f,%f,%f,%f,%f,%f", state.DT.UTC().Format("2006-01-02 15:04:05"), a, e, Rad2deg(ω), Rad2deg(ν), deltaT.Hours(), deltaT.Hours()/24)
				if conf.CSVAppend != nil {
					asTxt += "," + conf.CSVAppend(state)
				}
				if _, err := fAsCSV.WriteString("\n" + asTxt); err != nil {
					panic(err)
				}
			}
		} else {
			// The channel is closed, hence the propagation is over.
			if conf.Traj {
				fTraj.WriteString(fmt.Sprintf("\n# Propagation time end (UTC): %s\n", prevStatePtr.DT.UTC()))
				fTraj.Close()
			}
			if conf.AsCSV {
				fAsCSV.WriteString(fmt.Sprintf("\n# Propagation time end (UTC): %s\n", prevStatePtr.DT.UTC()))
				fAsCSV.Close()
			}
			break
		}
	}
}
