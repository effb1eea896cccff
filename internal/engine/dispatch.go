package engine

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/khryptorgraphics/procsim/internal/list"
	"github.com/khryptorgraphics/procsim/internal/pcb"
	"github.com/khryptorgraphics/procsim/internal/transcript"
)

// ErrInvalidDispatch marks an internal-invariant violation: RR attempting
// to run a PCB that is neither READY nor SUSPENDED.
var ErrInvalidDispatch = errors.New("invalid dispatch precondition")

func (e *Engine) dispatchSJF() error {
	if n := e.running.Head(); n != nil {
		p := n.Value
		if err := p.Worker.Continue(e.time); err != nil {
			return fmt.Errorf("engine: continue %s: %w", p.Name, err)
		}
		return nil
	}

	best := selectBestSJF(e.ready)
	if best == nil {
		return nil
	}
	p := best.Value
	e.ready.Remove(best)
	e.running.Append(p)
	p.State = pcb.StateRunning
	e.emit(transcript.Running(e.time, p.Name, p.RemainingTime))
	if err := p.Worker.Start(e.time); err != nil {
		return fmt.Errorf("engine: start %s: %w", p.Name, err)
	}
	return nil
}

// selectBestSJF returns the ready-queue node whose
// (remaining_time, arrival_time, name) triple is lexicographically
// smallest.
func selectBestSJF(ready *list.List[*pcb.PCB]) *list.Node[*pcb.PCB] {
	var best *list.Node[*pcb.PCB]
	for n := ready.Head(); n != nil; n = n.Next() {
		if best == nil || lessSJF(n.Value, best.Value) {
			best = n
		}
	}
	return best
}

func lessSJF(a, b *pcb.PCB) bool {
	if a.RemainingTime != b.RemainingTime {
		return a.RemainingTime < b.RemainingTime
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return bytes.Compare([]byte(a.Name), []byte(b.Name)) < 0
}

func (e *Engine) dispatchRR() error {
	if e.ready.IsEmpty() {
		if n := e.running.Head(); n != nil {
			p := n.Value
			if err := p.Worker.Continue(e.time); err != nil {
				return fmt.Errorf("engine: continue %s: %w", p.Name, err)
			}
		}
		return nil
	}

	if n := e.running.Head(); n != nil {
		p := n.Value
		e.running.Remove(n)
		p.State = pcb.StateSuspended
		if err := p.Worker.Suspend(e.time); err != nil {
			return fmt.Errorf("engine: suspend %s: %w", p.Name, err)
		}
		e.ready.Append(p)
	}

	qn := e.ready.PopHead()
	q := qn.Value
	priorState := q.State
	e.running.Append(q)
	e.emit(transcript.Running(e.time, q.Name, q.RemainingTime))

	switch priorState {
	case pcb.StateReady:
		if err := q.Worker.Start(e.time); err != nil {
			return fmt.Errorf("engine: start %s: %w", q.Name, err)
		}
	case pcb.StateSuspended:
		if err := q.Worker.Continue(e.time); err != nil {
			return fmt.Errorf("engine: continue %s: %w", q.Name, err)
		}
	default:
		return fmt.Errorf("%w: %s in state %s", ErrInvalidDispatch, q.Name, priorState)
	}
	q.State = pcb.StateRunning
	return nil
}
