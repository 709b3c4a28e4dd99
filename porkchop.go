package lambert

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gonum/matrix/mat64"
)

// PCPGenerator sweeps a launch window and an arrival window, solves the
// transfer for every date pair, and generates the contour data files of a
// porkchop plot. Infeasible pairs are stored as NaN.
func PCPGenerator(initPlanet, arrivalPlanet CelestialObject, initLaunch, maxLaunch, initArrival, maxArrival time.Time, ptsPerLaunchDay, ptsPerArrivalDay float64, plotC3 bool, pcpName string, verbose bool) (c3Map, tofMap, vinfMap map[time.Time][]float64, vInfInitVecs, vInfArriVecs map[time.Time][]mat64.Vector) {
	config := lambertConfig()
	launchWindow := int(maxLaunch.Sub(initLaunch).Hours() / 24)    //days
	arrivalWindow := int(maxArrival.Sub(initArrival).Hours() / 24) //days
	// Create the output arrays
	c3Map = make(map[time.Time][]float64)
	tofMap = make(map[time.Time][]float64)
	vinfMap = make(map[time.Time][]float64)
	vInfInitVecs = make(map[time.Time][]mat64.Vector)
	vInfArriVecs = make(map[time.Time][]mat64.Vector)
	if verbose {
		fmt.Printf("Launch window: %d days\nArrival window: %d days\n", launchWindow, arrivalWindow)
	}
	// Stores the header of the dat files.
	// No trailing new line because it's added in the for loop.
	dat := fmt.Sprintf("%% %s -> %s\n%%arrival days as new lines, departure as new columns", initPlanet, arrivalPlanet)
	hdls := make([]*os.File, 4)
	var fNames []string
	if plotC3 {
		fNames = []string{"c3", "tof", "vinf", "dates"}
	} else {
		fNames = []string{"vinf-init", "tof", "vinf-arrival", "dates"}
	}
	for i, name := range fNames {
		f, err := os.Create(fmt.Sprintf("%s/contour-%s-%s.dat", config.outputDir, pcpName, name))
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if _, err := f.WriteString(dat); err != nil {
			panic(err)
		}
		hdls[i] = f
	}

	// Let's write the date information now and close that file.
	hdls[3].WriteString(fmt.Sprintf("\n%%departure: \"%s\"\n%%arrival: \"%s\"\n%d,%d\n%d,%d\n", initLaunch.Format("2006-Jan-02"), initArrival.Format("2006-Jan-02"), 1, launchWindow, 1, arrivalWindow))
	hdls[3].Close()

	launchPts := int(float64(launchWindow) * ptsPerLaunchDay)
	arrivalPts := int(float64(arrivalWindow) * ptsPerArrivalDay)
	for launchIdx := 0; launchIdx < launchPts; launchIdx++ {
		launchDay := float64(launchIdx) / ptsPerLaunchDay
		// New line in files
		for _, hdl := range hdls[:3] {
			if _, err := hdl.WriteString("\n"); err != nil {
				panic(err)
			}
		}
		launchDT := initLaunch.Add(time.Duration(launchDay*24*3600) * time.Second)
		if verbose {
			fmt.Printf("Launch date %s\n", launchDT)
		}
		// Initialize the values
		c3Map[launchDT] = make([]float64, arrivalPts)
		tofMap[launchDT] = make([]float64, arrivalPts)
		vinfMap[launchDT] = make([]float64, arrivalPts)
		vInfInitVecs[launchDT] = make([]mat64.Vector, arrivalPts)
		vInfArriVecs[launchDT] = make([]mat64.Vector, arrivalPts)

		initOrbit := initPlanet.HelioOrbit(launchDT)
		initPlanetR := mat64.NewVector(2, initOrbit.R())
		initPlanetV := mat64.NewVector(2, initOrbit.V())
		for arrivalIdx := 0; arrivalIdx < arrivalPts; arrivalIdx++ {
			arrivalDay := float64(arrivalIdx) / ptsPerArrivalDay
			arrivalDT := initArrival.Add(time.Duration(arrivalDay*24*3600) * time.Second)
			arrivalOrbit := arrivalPlanet.HelioOrbit(arrivalDT)
			arrivalR := mat64.NewVector(2, arrivalOrbit.R())
			arrivalV := mat64.NewVector(2, arrivalOrbit.V())

			tof := arrivalDT.Sub(launchDT)
			var c3, vInfArrival float64
			var sol Solution
			var err error
			if tof <= 0 {
				// Overlapping windows, no backward in time transfer.
				err = ErrInfeasible
			} else {
				sol, err = SolveBody(initPlanetR, arrivalR, tof, Sun)
			}
			if err != nil {
				if verbose {
					fmt.Printf("departure: %s\tarrival: %s\t\t%s\n", launchDT, arrivalDT, err)
				}
				c3 = math.NaN()
				vInfArrival = math.NaN()
				// Store a nil vector to not lose track of indexing
				vInfInitVecs[launchDT][arrivalIdx] = *mat64.NewVector(2, nil)
				vInfArriVecs[launchDT][arrivalIdx] = *mat64.NewVector(2, nil)
			} else {
				// Compute the c3
				VInfInit := mat64.NewVector(2, nil)
				VInfInit.SubVec(initPlanetV, sol.V0)
				// WARNING: When *not* plotting the c3, we just store the V infinity at departure in the c3 variable!
				if plotC3 {
					c3 = math.Pow(mat64.Norm(VInfInit, 2), 2)
				} else {
					c3 = mat64.Norm(VInfInit, 2)
				}
				if math.IsNaN(c3) {
					c3 = 0
				}
				// Compute the v_infinity at destination
				VInfArrival := mat64.NewVector(2, nil)
				VInfArrival.SubVec(arrivalV, sol.V1)
				vInfArrival = mat64.Norm(VInfArrival, 2)
				vInfInitVecs[launchDT][arrivalIdx] = *VInfInit
				vInfArriVecs[launchDT][arrivalIdx] = *VInfArrival
			}
			// Store data in the files
			hdls[0].WriteString(fmt.Sprintf("%f,", c3))
			hdls[1].WriteString(fmt.Sprintf("%f,", tof.Hours()/24))
			hdls[2].WriteString(fmt.Sprintf("%f,", vInfArrival))
			// and in the arrays
			c3Map[launchDT][arrivalIdx] = c3
			tofMap[launchDT][arrivalIdx] = tof.Hours() / 24
			vinfMap[launchDT][arrivalIdx] = vInfArrival
		}
	}
	if verbose {
		fmt.Printf("=== Contours ===\nsaved as %s/contour-%s-{%s}.dat\n", config.outputDir, pcpName, fNames[0]+","+fNames[1]+","+fNames[2]+","+fNames[3])
	}
	return
}
