package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/soniakeys/meeus/julian"
	"github.com/spf13/viper"
	"github.com/umcconnell/lamberts-problem"
	"github.com/umcconnell/lamberts-problem/viz"
)

const (
	defaultScenario = "~~unset~~"
	dtFormat        = "2006-01-02 15:04:05"
)

var scenario string

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML to sweep the porkchop from")
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
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml not found", scenario)
	}
	prefix := viper.GetString("General.fileprefix")
	verbose := viper.GetBool("General.verbose")
	c3plot := viper.GetBool("General.c3plot")
	initPlanet := parsePlanet("Departure.planet")
	arrivalPlanet := parsePlanet("Arrival.planet")
	initLaunch := parseDate("Departure.from")
	maxLaunch := parseDate("Departure.until")
	initArrival := parseDate("Arrival.from")
	maxArrival := parseDate("Arrival.until")
	resoLaunch := viper.GetFloat64("Departure.resolution")
	resoArrival := viper.GetFloat64("Arrival.resolution")

	c3Map, tofMap, vinfMap, _, _ := lambert.PCPGenerator(initPlanet, arrivalPlanet,
		initLaunch, maxLaunch, initArrival, maxArrival,
		resoLaunch, resoArrival, c3plot, prefix, verbose)

	if !lambert.PlotsEnabled() {
		return
	}
	first := "c3 km²/s²"
	if !c3plot {
		first = "vInf at departure km/s"
	}
	for _, quantity := range []struct {
		data  map[time.Time][]float64
		title string
		name  string
	}{
		{c3Map, first, "c3"},
		{tofMap, "time of flight days", "tof"},
		{vinfMap, "vInf at arrival km/s", "vinf"},
	} {
		path := filepath.Join(lambert.OutputDirectory(), fmt.Sprintf("pcp-%s-%s.png", prefix, quantity.name))
		if err := viz.PlotPorkchop(quantity.data, initArrival, resoArrival, quantity.title, path); err != nil {
			log.Fatal(err)
		}
		if verbose {
			fmt.Printf("saved %s\n", path)
		}
	}
}
