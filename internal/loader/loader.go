// Package loader reads a process-descriptor file and builds the initial,
// arrival-ordered PCB slice the engine consumes.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/khryptorgraphics/procsim/internal/pcb"
)

// Load reads one descriptor per line, each four space-separated fields:
// arrival_time name service_time memory_size. Blank lines are skipped.
// The returned slice preserves file order, which callers must trust is
// already non-decreasing by arrival_time (the engine's contractual
// precondition); Load does not re-sort.
func Load(r io.Reader) ([]*pcb.PCB, error) {
	scanner := bufio.NewScanner(r)
	var procs []*pcb.PCB
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("loader: line %d: %w", lineNo, err)
		}
		procs = append(procs, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: read: %w", err)
	}
	return procs, nil
}

func parseLine(line string) (*pcb.PCB, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return nil, fmt.Errorf("expected 4 fields, got %d: %q", len(fields), line)
	}

	arrival, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("arrival_time %q: %w", fields[0], err)
	}
	name := fields[1]
	if name == "" {
		return nil, fmt.Errorf("process name must not be empty")
	}
	service, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("service_time %q: %w", fields[2], err)
	}
	memSize, err := strconv.ParseUint(fields[3], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("memory_size %q: %w", fields[3], err)
	}
	if memSize < 1 || memSize > 2048 {
		return nil, fmt.Errorf("memory_size %d out of range [1, 2048]", memSize)
	}

	return pcb.New(name, uint32(arrival), uint32(service), uint16(memSize)), nil
}
