package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
	"github.com/soniakeys/meeus/base"
	"github.com/soniakeys/meeus/julian"
	"github.com/spf13/viper"
	"github.com/umcconnell/lamberts-problem"
	"github.com/umcconnell/lamberts-problem/viz"
)

const (
	defaultScenario = "~~unset~~"
	dtFormat        = "2006-01-02 15:04:05"
)

var (
	scenario string
	verify   bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML describing the transfer (canonical demo when unset)")
	flag.BoolVar(&verify, "verify", false, "propagate the solution and report the arrival miss distance")
}

// parseDate reads a date either as a Julian day number or as a calendar
// string, whichever the scenario provides.
func parseDate(key string) time.Time {
	if jd := viper.GetFloat64(key); jd != 0 {
		return julian.JDToTime(jd)
	}
	dt, err := time.Parse(dtFormat, viper.GetString(key))
	if err != nil {
		log.Fatalf("could not read %s: %s", key, err)
	}
	return dt
}

func parsePlanet(key string) lambert.CelestialObject {
	planet, err := lambert.CelestialObjectFromString(viper.GetString(key))
	if err != nil {
		log.Fatal(err)
	}
	return planet
}

func main() {
	flag.Parse()
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "cmd", "lambert")
	lambert.SetLogger(klog)

	// The canonical demo transfer, overridden by the scenario: a quarter turn
	// of geometry flown in two time units, which forces the long arc.
	body := lambert.Canonical
	R0 := mat64.NewVector(2, []float64{1, 0})
	R1 := mat64.NewVector(2, []float64{0, 1})
	Δt := 2 * time.Second
	start := julian.JDToTime(base.J2000)
	prefix := "lambert"
	export := false
	var vDep, vArr *mat64.Vector

	if scenario != defaultScenario {
		viper.AddConfigPath(".")
		viper.SetConfigName(scenario)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("./%s.toml not found", scenario)
		}
		if p := viper.GetString("General.fileprefix"); p != "" {
			prefix = p
		}
		export = viper.GetBool("General.export")
		if viper.IsSet("Problem.dt") {
			// Literal positions in canonical units.
			R0 = mat64.NewVector(2, []float64{viper.GetFloat64("Problem.r0x"), viper.GetFloat64("Problem.r0y")})
			R1 = mat64.NewVector(2, []float64{viper.GetFloat64("Problem.r1x"), viper.GetFloat64("Problem.r1y")})
			Δt = time.Duration(viper.GetFloat64("Problem.dt") * float64(time.Second))
		} else {
			// Heliocentric transfer between two planets.
			depPlanet := parsePlanet("Departure.planet")
			arrPlanet := parsePlanet("Arrival.planet")
			launchDT := parseDate("Departure.date")
			arrivalDT := parseDate("Arrival.date")
			if !arrivalDT.After(launchDT) {
				log.Fatal("arrival must come after departure")
			}
			depOrbit := depPlanet.HelioOrbit(launchDT)
			arrOrbit := arrPlanet.HelioOrbit(arrivalDT)
			body = lambert.Sun
			R0 = mat64.NewVector(2, depOrbit.R())
			R1 = mat64.NewVector(2, arrOrbit.R())
			vDep = mat64.NewVector(2, depOrbit.V())
			vArr = mat64.NewVector(2, arrOrbit.V())
			Δt = arrivalDT.Sub(launchDT)
			start = launchDT
		}
	}

	sol, err := lambert.SolveBody(R0, R1, Δt, body)
	if err != nil {
		log.Fatal(err)
	}
	klog.Log("level", "notice", "subsys", "lambert", "msg", "solved", "branch", sol.Branch,
		"a", sol.A, "residual", sol.Residual,
		"v0", fmt.Sprintf("%.6f,%.6f", sol.V0.At(0, 0), sol.V0.At(1, 0)),
		"v1", fmt.Sprintf("%.6f,%.6f", sol.V1.At(0, 0), sol.V1.At(1, 0)))
	if vDep != nil {
		vInfInit := mat64.NewVector(2, nil)
		vInfInit.SubVec(vDep, sol.V0)
		vInfArrival := mat64.NewVector(2, nil)
		vInfArrival.SubVec(vArr, sol.V1)
		klog.Log("level", "notice", "subsys", "lambert",
			"c3", math.Pow(mat64.Norm(vInfInit, 2), 2),
			"vInfArrival", mat64.Norm(vInfArrival, 2))
	}

	if verify || export {
		conf := lambert.ExportConfig{}
		if export {
			conf = lambert.ExportConfig{Filename: prefix, Traj: true, AsCSV: true}
		}
		orbit := lambert.NewOrbitFromRV(
			[]float64{R0.At(0, 0), R0.At(1, 0)},
			[]float64{sol.V0.At(0, 0), sol.V0.At(1, 0)}, body)
		lambert.NewPreciseTwoBody(orbit, start, start.Add(Δt), Δt/10000, conf).Propagate()
		if verify {
			R, _ := orbit.RV()
			miss := math.Hypot(R[0]-R1.At(0, 0), R[1]-R1.At(1, 0))
			klog.Log("level", "notice", "subsys", "prop", "msg", "verified", "miss", miss)
		}
	}

	if lambert.PlotsEnabled() {
		path := filepath.Join(lambert.OutputDirectory(), fmt.Sprintf("%s-transfer.png", prefix))
		if err := viz.PlotTransfer(sol, R0, R1, body, path); err != nil {
			log.Fatal(err)
		}
		klog.Log("level", "notice", "subsys", "viz", "msg", "transfer rendered", "file", path)
	}
}
