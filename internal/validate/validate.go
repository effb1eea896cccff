// Package validate performs eager argument and descriptor-list checks,
// rejecting before any simulation state exists, so cmd/procsim can report
// cobra-style usage errors without entering internal/engine.
package validate

import (
	"fmt"

	"github.com/khryptorgraphics/procsim/internal/engine"
	"github.com/khryptorgraphics/procsim/internal/pcb"
)

// Policy validates the -s flag against the two known scheduling policies.
func Policy(s string) (engine.Policy, error) {
	switch s {
	case "SJF":
		return engine.SJF, nil
	case "RR":
		return engine.RR, nil
	default:
		return 0, fmt.Errorf("invalid scheduler %q: must be one of SJF, RR", s)
	}
}

// MemoryMode validates the -m flag against the two known memory modes.
func MemoryMode(s string) (engine.MemoryMode, error) {
	switch s {
	case "infinite":
		return engine.Infinite, nil
	case "best-fit":
		return engine.BestFit, nil
	default:
		return 0, fmt.Errorf("invalid memory mode %q: must be one of infinite, best-fit", s)
	}
}

// Quantum validates the -q flag against the fixed enum {1, 2, 3}.
func Quantum(q int) (uint32, error) {
	switch q {
	case 1, 2, 3:
		return uint32(q), nil
	default:
		return 0, fmt.Errorf("invalid quantum %d: must be one of 1, 2, 3", q)
	}
}

// Descriptors checks the loaded process list against the engine's
// contractual preconditions: non-empty, unique names, and non-decreasing
// arrival_time (the engine assumes a pre-sorted submitted list).
func Descriptors(procs []*pcb.PCB) error {
	if len(procs) == 0 {
		return fmt.Errorf("descriptor file contains no processes")
	}

	seen := make(map[string]struct{}, len(procs))
	var prevArrival uint32
	for i, p := range procs {
		if p.Name == "" {
			return fmt.Errorf("process at position %d has an empty name", i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate process name %q", p.Name)
		}
		seen[p.Name] = struct{}{}

		if i > 0 && p.ArrivalTime < prevArrival {
			return fmt.Errorf("descriptor file is not sorted by arrival_time: %q (%d) follows an arrival_time of %d", p.Name, p.ArrivalTime, prevArrival)
		}
		prevArrival = p.ArrivalTime

		if p.MemorySize < 1 || p.MemorySize > 2048 {
			return fmt.Errorf("process %q has memory_size %d out of range [1, 2048]", p.Name, p.MemorySize)
		}
	}
	return nil
}
