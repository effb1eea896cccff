package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khryptorgraphics/procsim/internal/config"
	"github.com/khryptorgraphics/procsim/internal/loader"
	"github.com/khryptorgraphics/procsim/internal/validate"
)

func validateCmd() *cobra.Command {
	var (
		file       string
		scheduler  string
		memory     string
		quantum    int
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a descriptor file and CLI arguments without running",
		Long: `Validate performs the eager checks run does before entering the
cycle engine: scheduler/memory/quantum enum checks and descriptor-file
well-formedness (unique names, non-decreasing arrival_time, in-range
memory sizes). The memory capacity is not checked. Exits non-zero on the
first violation found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg, file, scheduler, memory, quantum, "", 0, false)

			if _, err := validate.Policy(cfg.Scheduler); err != nil {
				return err
			}
			if _, err := validate.MemoryMode(cfg.Memory); err != nil {
				return err
			}
			if _, err := validate.Quantum(cfg.Quantum); err != nil {
				return err
			}
			if cfg.File == "" {
				return fmt.Errorf("a process-descriptor file is required (-f)")
			}

			f, err := os.Open(cfg.File)
			if err != nil {
				return fmt.Errorf("open %s: %w", cfg.File, err)
			}
			defer f.Close()

			procs, err := loader.Load(f)
			if err != nil {
				return err
			}
			if err := validate.Descriptors(procs); err != nil {
				return err
			}

			fmt.Printf("OK: %d processes, scheduler=%s, memory=%s, quantum=%d\n", len(procs), cfg.Scheduler, cfg.Memory, cfg.Quantum)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "process-descriptor file")
	cmd.Flags().StringVarP(&scheduler, "scheduler", "s", "", "scheduling policy: SJF or RR")
	cmd.Flags().StringVarP(&memory, "memory", "m", "", "memory mode: infinite or best-fit")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "simulated-time quantum: 1, 2, or 3")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "optional YAML config file")

	return cmd
}
