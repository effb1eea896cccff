// Package engine implements the deterministic cycle loop: a four-phase
// pipeline (terminate, admit, memory-admit, dispatch) that drives
// internal/pcb records through internal/list queues, internal/memory
// allocation, and internal/worker protocol calls.
package engine

import (
	"fmt"
	"io"

	"github.com/khryptorgraphics/procsim/internal/list"
	"github.com/khryptorgraphics/procsim/internal/memory"
	"github.com/khryptorgraphics/procsim/internal/pcb"
	"github.com/khryptorgraphics/procsim/internal/transcript"
	"github.com/khryptorgraphics/procsim/internal/worker"
)

// Policy selects the dispatch discipline of Phase 4.
type Policy int

const (
	SJF Policy = iota
	RR
)

func (p Policy) String() string {
	if p == RR {
		return "RR"
	}
	return "SJF"
}

// MemoryMode selects Phase 3's admission discipline.
type MemoryMode int

const (
	Infinite MemoryMode = iota
	BestFit
)

func (m MemoryMode) String() string {
	if m == BestFit {
		return "best-fit"
	}
	return "infinite"
}

// Config bundles the run's fixed parameters.
type Config struct {
	Quantum        uint32
	Policy         Policy
	MemoryMode     MemoryMode
	MemoryCapacity uint16
}

// Spawner creates the worker bound to a PCB at admission (submitted →
// input). Production code wires this to internal/worker.Spawn; tests wire
// it to an in-memory fake, sidestepping real process spawns.
type Spawner interface {
	Spawn(name string) (worker.Protocol, error)
}

// Engine owns every queue and the allocator for one run, advancing
// simulated time one quantum per cycle until every process has
// terminated.
type Engine struct {
	cfg     Config
	alloc   *memory.Allocator
	spawner Spawner
	out     io.Writer

	submitted *list.List[*pcb.PCB]
	input     *list.List[*pcb.PCB]
	ready     *list.List[*pcb.PCB]
	running   *list.List[*pcb.PCB] // holds at most one
	finished  *list.List[*pcb.PCB]

	total int
	time  uint32

	summary runSummary
}

// runSummary accumulates run-level diagnostics beyond the required
// metrics block: total successful allocations, the peak concurrent
// ready-queue depth, and per-process allocation-failure stall counts.
type runSummary struct {
	totalAllocations int
	peakReadyDepth   int
	allocStalls      map[string]int
}

// Summary is runSummary's public, read-only view, returned once a run
// completes.
type Summary struct {
	TotalAllocations int
	PeakReadyDepth   int
	AllocStalls      map[string]int
}

// Summary returns the run-summary counters accumulated so far. Meaningful
// once Run has returned.
func (e *Engine) Summary() Summary {
	stalls := make(map[string]int, len(e.summary.allocStalls))
	for k, v := range e.summary.allocStalls {
		stalls[k] = v
	}
	return Summary{
		TotalAllocations: e.summary.totalAllocations,
		PeakReadyDepth:   e.summary.peakReadyDepth,
		AllocStalls:      stalls,
	}
}

// New builds an Engine over procs, which must already be sorted by
// non-decreasing arrival_time — a contractual precondition of the
// caller (the descriptor loader), not something New re-validates.
func New(cfg Config, procs []*pcb.PCB, spawner Spawner, out io.Writer) *Engine {
	submitted := list.New[*pcb.PCB]()
	for _, p := range procs {
		submitted.Append(p)
	}
	return &Engine{
		cfg:       cfg,
		alloc:     memory.New(cfg.MemoryCapacity),
		spawner:   spawner,
		out:       out,
		submitted: submitted,
		input:     list.New[*pcb.PCB](),
		ready:     list.New[*pcb.PCB](),
		running:   list.New[*pcb.PCB](),
		finished:  list.New[*pcb.PCB](),
		total:     len(procs),
		summary:   runSummary{allocStalls: make(map[string]int)},
	}
}

// Metrics is the end-of-run performance summary.
type Metrics struct {
	AverageTurnaround int
	MaxOverhead       float64
	AverageOverhead   float64
	Makespan          uint32
}

// Run drives the cycle loop to completion and returns the final metrics.
// A fatal condition (protocol mismatch, pipe I/O failure, spawn failure,
// invalid dispatch precondition) aborts the run and returns a non-nil
// error; partial transcript output already written to out stands.
func (e *Engine) Run() (Metrics, error) {
	for {
		if err := e.phaseTerminate(); err != nil {
			return Metrics{}, err
		}
		if err := e.phaseAdmit(); err != nil {
			return Metrics{}, err
		}
		if err := e.phaseMemoryAdmit(); err != nil {
			return Metrics{}, err
		}
		if err := e.phaseDispatch(); err != nil {
			return Metrics{}, err
		}
		if e.ready.Len() > e.summary.peakReadyDepth {
			e.summary.peakReadyDepth = e.ready.Len()
		}

		if e.finished.Len() == e.total {
			return e.metrics(), nil
		}
		e.time += e.cfg.Quantum
	}
}

func (e *Engine) emit(line string) {
	fmt.Fprintln(e.out, line)
}

func (e *Engine) phaseTerminate() error {
	n := e.running.Head()
	if n == nil {
		return nil
	}
	p := n.Value
	if !p.Tick(e.cfg.Quantum) {
		return nil
	}

	if e.cfg.MemoryMode == BestFit && p.Memory != nil {
		e.alloc.Free(p.Memory)
		p.Memory = nil
	}

	e.emit(transcript.Finished(e.time, p.Name, e.input.Len()+e.ready.Len()))

	e.running.Remove(n)
	p.State = pcb.StateTerminated
	p.TerminationTime = e.time
	e.finished.Append(p)

	digest, err := p.Worker.Terminate(e.time)
	if err != nil {
		return fmt.Errorf("engine: terminate worker for %s: %w", p.Name, err)
	}
	e.emit(transcript.FinishedProcess(e.time, p.Name, digest))
	return nil
}

func (e *Engine) phaseAdmit() error {
	for {
		head := e.submitted.Head()
		if head == nil || head.Value.ArrivalTime > e.time {
			return nil
		}
		n := e.submitted.PopHead()
		p := n.Value

		w, err := e.spawner.Spawn(p.Name)
		if err != nil {
			return fmt.Errorf("engine: spawn worker for %s: %w", p.Name, err)
		}
		p.Worker = w
		p.State = pcb.StateNew
		e.input.Append(p)
	}
}

func (e *Engine) phaseMemoryAdmit() error {
	if e.cfg.MemoryMode == Infinite {
		for {
			n := e.input.PopHead()
			if n == nil {
				return nil
			}
			p := n.Value
			p.State = pcb.StateReady
			e.ready.Append(p)
		}
	}

	n := e.input.Head()
	for n != nil {
		next := n.Next()
		p := n.Value
		if block, ok := e.alloc.Allocate(p.MemorySize); ok {
			p.Memory = block
			e.input.Remove(n)
			p.State = pcb.StateReady
			e.ready.Append(p)
			e.emit(transcript.Ready(e.time, p.Name, block.Location))
			e.summary.totalAllocations++
		} else {
			e.summary.allocStalls[p.Name]++
		}
		n = next
	}
	return nil
}

func (e *Engine) phaseDispatch() error {
	switch e.cfg.Policy {
	case RR:
		return e.dispatchRR()
	default:
		return e.dispatchSJF()
	}
}

func (e *Engine) metrics() Metrics {
	var sumTurnaround uint64
	var sumOverhead, maxOverhead float64
	n := e.finished.Len()

	for node := e.finished.Head(); node != nil; node = node.Next() {
		p := node.Value
		sumTurnaround += uint64(p.Turnaround())
		oh := p.Overhead()
		sumOverhead += oh
		if oh > maxOverhead {
			maxOverhead = oh
		}
	}

	avgTurnaround := 0
	if n > 0 {
		avgTurnaround = int((sumTurnaround + uint64(n) - 1) / uint64(n))
	}
	avgOverhead := 0.0
	if n > 0 {
		avgOverhead = sumOverhead / float64(n)
	}

	return Metrics{
		AverageTurnaround: avgTurnaround,
		MaxOverhead:       maxOverhead,
		AverageOverhead:   avgOverhead,
		Makespan:          e.time,
	}
}

// EmitLines writes the three metrics lines to out.
func (m Metrics) EmitLines(out io.Writer) {
	for _, line := range transcript.Metrics(m.AverageTurnaround, m.MaxOverhead, m.AverageOverhead, m.Makespan) {
		fmt.Fprintln(out, line)
	}
}
