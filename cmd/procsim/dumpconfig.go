package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/khryptorgraphics/procsim/internal/config"
)

// dumpConfigYAML prints the fully-resolved configuration (defaults, file,
// environment, and CLI flags already merged) as YAML and exits without
// running the simulation.
func dumpConfigYAML(cfg *config.Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
