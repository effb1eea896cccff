// Package pcb defines the per-process control block the cycle engine
// moves between lifecycle queues.
package pcb

import (
	"fmt"

	"github.com/khryptorgraphics/procsim/internal/memory"
	"github.com/khryptorgraphics/procsim/internal/worker"
)

// State is one stage of a process's lifecycle, driven exclusively by the
// cycle engine.
type State int

const (
	StateNew State = iota
	StateReady
	StateRunning
	StateSuspended
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateSuspended:
		return "SUSPENDED"
	case StateTerminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PCB is one simulated process's record. Fields are exported for the
// engine's direct manipulation; pcb itself holds no queue membership, that
// is entirely owned by the list.Node wrapping a *PCB in the engine's
// queues.
type PCB struct {
	Name string

	ArrivalTime     uint32
	ServiceTime     uint32
	RemainingTime   uint32
	TerminationTime uint32

	MemorySize uint16

	State  State
	Memory *memory.Block
	Worker worker.Protocol
}

// New builds a PCB in its initial NEW state, with RemainingTime seeded
// from ServiceTime.
func New(name string, arrival, service uint32, memSize uint16) *PCB {
	return &PCB{
		Name:          name,
		ArrivalTime:   arrival,
		ServiceTime:   service,
		RemainingTime: service,
		MemorySize:    memSize,
		State:         StateNew,
	}
}

// Tick subtracts q from RemainingTime, saturating at zero, and reports
// whether the process has now fully run.
func (p *PCB) Tick(q uint32) bool {
	if q >= p.RemainingTime {
		p.RemainingTime = 0
	} else {
		p.RemainingTime -= q
	}
	return p.RemainingTime == 0
}

// Turnaround is termination_time - arrival_time; only meaningful once
// Terminated.
func (p *PCB) Turnaround() uint32 {
	return p.TerminationTime - p.ArrivalTime
}

// Overhead is turnaround divided by the originally declared service time.
func (p *PCB) Overhead() float64 {
	return float64(p.Turnaround()) / float64(p.ServiceTime)
}
