package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/wlgs/fatigue-detection-system/internal/config"
	"github.com/wlgs/fatigue-detection-system/internal/driver"
	"github.com/wlgs/fatigue-detection-system/internal/environ"
	"github.com/wlgs/fatigue-detection-system/internal/restcycle"
)

// #region main

// inspect prints the fully resolved configuration (after YAML merging)
// plus the available profiles and scenarios, for tuning review.
func main() {
	configPath := flag.String("config", "", "path to YAML configuration (optional)")
	flag.Parse()

	params := restcycle.DefaultParams()
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
			os.Exit(2)
		}
		params, err = f.Params()
		if err != nil {
			fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
			os.Exit(2)
		}
	}

	profiles := make(map[string]driver.Profile)
	for _, name := range driver.ProfileNames() {
		p, _ := driver.ProfileByName(name)
		profiles[name] = p
	}
	scenarios := make(map[string]environ.Context)
	for _, name := range environ.ScenarioNames() {
		ctx, _ := environ.ScenarioContext(name)
		scenarios[name] = ctx
	}

	out := struct {
		Params    restcycle.Params           `json:"params"`
		Profiles  map[string]driver.Profile  `json:"profiles"`
		Scenarios map[string]environ.Context `json:"scenarios"`
	}{params, profiles, scenarios}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
		os.Exit(2)
	}
}

// #endregion main
