package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	rootCmd *cobra.Command
)

func main() {
	rootCmd = &cobra.Command{
		Use:   "procsim",
		Short: "Discrete-time process manager simulator",
		Long: `procsim simulates a process manager: it advances simulated time in
fixed quanta, moves process-control records through NEW/READY/RUNNING/
SUSPENDED/TERMINATED, allocates contiguous memory under a best-fit policy,
and drives real child worker processes over a synchronous pipe/signal
protocol.`,
		Version: version,
		Example: `  # Run with SJF scheduling and infinite memory
  procsim run -f processes.txt -s SJF -m infinite -q 2

  # Run with round-robin and best-fit memory, printing the run summary
  procsim run -f processes.txt -s RR -m best-fit -q 1 --summary

  # Validate a descriptor file and CLI arguments without running
  procsim validate -f processes.txt -s SJF -m infinite -q 1`,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "procsim: %v\n", err)
		os.Exit(1)
	}
}
