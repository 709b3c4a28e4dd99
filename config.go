package lambert

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _lambertconfig{}
)

// _lambertconfig is a "hidden" struct, just use `lambertConfig`
type _lambertconfig struct {
	VSOP87    bool
	VSOP87Dir string
	outputDir string
	plots     bool
}

// OutputDir returns the directory where exported trajectories and contour
// files land.
func (c _lambertconfig) OutputDir() string {
	return c.outputDir
}

// Plots returns whether plot generation is wanted.
func (c _lambertconfig) Plots() bool {
	return c.plots
}

// OutputDirectory returns where exported products land.
func OutputDirectory() string {
	return lambertConfig().OutputDir()
}

// PlotsEnabled returns whether the configuration asks for rendered plots.
func PlotsEnabled() bool {
	return lambertConfig().Plots()
}

// lambertConfig returns the package configuration. The configuration file is
// optional: without a `LAMBERT_CONFIG` directory holding a conf.toml, the
// ephemerides fall back to the circular model and files land in the working
// directory. Setting the environment variable to a directory without a
// conf.toml panics, since that is always a setup mistake.
func lambertConfig() _lambertconfig {
	if cfgLoaded {
		return config
	}
	conf := _lambertconfig{VSOP87: false, VSOP87Dir: "", outputDir: ".", plots: false}
	if confPath := os.Getenv("LAMBERT_CONFIG"); confPath != "" {
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found", confPath))
		}
		conf.VSOP87 = viper.GetBool("VSOP87.enabled")
		conf.VSOP87Dir = viper.GetString("VSOP87.directory")
		if out := viper.GetString("general.output_path"); out != "" {
			conf.outputDir = out
		}
		if viper.IsSet("general.plots") {
			conf.plots = viper.GetBool("general.plots")
		}
	}
	cfgLoaded = true
	config = conf
	return config
}
