// Package transcript formats the simulator's bit-exact stdout lines. This
// is the only public output contract; nothing here may be routed through
// the slog-based ambient logger used elsewhere.
package transcript

import "fmt"

// Ready formats the line emitted when a process is assigned a memory
// block under best-fit mode.
func Ready(t uint32, name string, location uint16) string {
	return fmt.Sprintf("%d,READY,process_name=%s,assigned_at=%d", t, name, location)
}

// Running formats the line emitted when a process is dispatched onto the
// running slot.
func Running(t uint32, name string, remaining uint32) string {
	return fmt.Sprintf("%d,RUNNING,process_name=%s,remaining_time=%d", t, name, remaining)
}

// Finished formats the line emitted when a process's remaining_time
// reaches zero. procRemaining is len(input)+len(ready) at that instant.
func Finished(t uint32, name string, procRemaining int) string {
	return fmt.Sprintf("%d,FINISHED,process_name=%s,proc_remaining=%d", t, name, procRemaining)
}

// FinishedProcess formats the line emitted once a terminated process's
// worker has returned its digest. digest is embedded verbatim; the core
// never computes or reinterprets it.
func FinishedProcess(t uint32, name, digest string) string {
	return fmt.Sprintf("%d,FINISHED-PROCESS,process_name=%s,sha=%s", t, name, digest)
}

// Metrics formats the three end-of-run summary lines.
func Metrics(avgTurnaround int, maxOverhead, avgOverhead float64, makespan uint32) []string {
	return []string{
		fmt.Sprintf("Turnaround time %d", avgTurnaround),
		fmt.Sprintf("Time overhead %.2f %.2f", maxOverhead, avgOverhead),
		fmt.Sprintf("Makespan %d", makespan),
	}
}
