// Command testbed opens a window and renders the planet and terrain scene.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/neonlabs/neon"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "assets/testbed.toml", "scene config file (TOML or YAML)")
	flag.Parse()

	cfg, err := neon.LoadConfigFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := neon.NewTestbedApp(cfg).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
