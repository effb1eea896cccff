package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khryptorgraphics/procsim/internal/config"
	"github.com/khryptorgraphics/procsim/internal/engine"
	"github.com/khryptorgraphics/procsim/internal/loader"
	"github.com/khryptorgraphics/procsim/internal/validate"
)

func runCmd() *cobra.Command {
	var (
		file         string
		scheduler    string
		memory       string
		quantum      int
		configFile   string
		workerBinary string
		capacity     int
		summary      bool
		dumpConfig   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation over a process-descriptor file",
		Long: `Run reads a process-descriptor file, drives the scheduler cycle
engine to completion, and writes the bit-exact transcript and performance
metrics to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg, file, scheduler, memory, quantum, workerBinary, capacity, summary)

			if dumpConfig {
				return dumpConfigYAML(cfg)
			}
			return runSimulation(cfg)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "process-descriptor file")
	cmd.Flags().StringVarP(&scheduler, "scheduler", "s", "", "scheduling policy: SJF or RR")
	cmd.Flags().StringVarP(&memory, "memory", "m", "", "memory mode: infinite or best-fit")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "simulated-time quantum: 1, 2, or 3")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "optional YAML config file")
	cmd.Flags().StringVar(&workerBinary, "worker", "", "worker binary path")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "total memory capacity in MB (best-fit mode)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print the run summary to stderr after the transcript")
	cmd.Flags().BoolVar(&dumpConfig, "dump-config", false, "print the resolved configuration as YAML and exit")

	return cmd
}

// applyFlagOverrides lets explicitly-set CLI flags win over the viper-bound
// file/environment configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, file, scheduler, memory string, quantum int, workerBinary string, capacity int, summary bool) {
	if cmd.Flags().Changed("file") {
		cfg.File = file
	}
	if cmd.Flags().Changed("scheduler") {
		cfg.Scheduler = scheduler
	}
	if cmd.Flags().Changed("memory") {
		cfg.Memory = memory
	}
	if cmd.Flags().Changed("quantum") {
		cfg.Quantum = quantum
	}
	if cmd.Flags().Changed("worker") {
		cfg.WorkerBinary = workerBinary
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Capacity = capacity
	}
	if cmd.Flags().Changed("summary") {
		cfg.Summary = summary
	}
}

func buildEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("a process-descriptor file is required (-f)")
	}

	policy, err := validate.Policy(cfg.Scheduler)
	if err != nil {
		return nil, err
	}
	mode, err := validate.MemoryMode(cfg.Memory)
	if err != nil {
		return nil, err
	}
	quantum, err := validate.Quantum(cfg.Quantum)
	if err != nil {
		return nil, err
	}
	if cfg.Capacity < 1 || cfg.Capacity > 65535 {
		return nil, fmt.Errorf("invalid capacity %d: must be in [1, 65535]", cfg.Capacity)
	}

	f, err := os.Open(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.File, err)
	}
	defer f.Close()

	procs, err := loader.Load(f)
	if err != nil {
		return nil, err
	}
	if err := validate.Descriptors(procs); err != nil {
		return nil, err
	}

	econf := engine.Config{
		Quantum:        quantum,
		Policy:         policy,
		MemoryMode:     mode,
		MemoryCapacity: uint16(cfg.Capacity),
	}
	spawner := loggingSpawner{next: engine.ProcessSpawner{Binary: cfg.WorkerBinary}, logger: logger}
	return engine.New(econf, procs, spawner, os.Stdout), nil
}

func runSimulation(cfg *config.Config) error {
	logger := newLogger()
	runID := uuid.NewString()
	logger.Info("run starting", "run_id", runID, "scheduler", cfg.Scheduler, "memory", cfg.Memory, "quantum", cfg.Quantum)

	e, err := buildEngine(cfg, logger)
	if err != nil {
		logger.Error("run failed to start", "run_id", runID, "error", err)
		return err
	}

	metrics, err := e.Run()
	if err != nil {
		return err
	}
	metrics.EmitLines(os.Stdout)

	if cfg.Summary {
		printSummary(e.Summary())
	}
	return nil
}

// printSummary writes the run-summary diagnostic to stderr, after the
// bit-exact stdout transcript, so stdout remains byte-for-byte the
// public contract.
func printSummary(s engine.Summary) {
	fmt.Fprintf(os.Stderr, "Total blocks allocated: %d\n", s.TotalAllocations)
	fmt.Fprintf(os.Stderr, "Peak ready-queue depth: %d\n", s.PeakReadyDepth)

	names := make([]string, 0, len(s.AllocStalls))
	for name := range s.AllocStalls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "Allocation stalls for %s: %d\n", name, s.AllocStalls[name])
	}
}
