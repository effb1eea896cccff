package engine

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khryptorgraphics/procsim/internal/pcb"
	"github.com/khryptorgraphics/procsim/internal/worker"
)

// fakeWorker implements worker.Protocol without spawning any OS process,
// so the cycle loop can be exercised deterministically.
type fakeWorker struct {
	name      string
	mismatch  bool
	calls     *[]string
}

func (f *fakeWorker) PID() int { return 1 }

func (f *fakeWorker) Start(t uint32) error {
	*f.calls = append(*f.calls, fmt.Sprintf("start(%s,%d)", f.name, t))
	if f.mismatch {
		return fmt.Errorf("%w: forced", worker.ErrProtocolMismatch)
	}
	return nil
}

func (f *fakeWorker) Suspend(t uint32) error {
	*f.calls = append(*f.calls, fmt.Sprintf("suspend(%s,%d)", f.name, t))
	return nil
}

func (f *fakeWorker) Continue(t uint32) error {
	*f.calls = append(*f.calls, fmt.Sprintf("continue(%s,%d)", f.name, t))
	if f.mismatch {
		return fmt.Errorf("%w: forced", worker.ErrProtocolMismatch)
	}
	return nil
}

func (f *fakeWorker) Terminate(t uint32) (string, error) {
	*f.calls = append(*f.calls, fmt.Sprintf("terminate(%s,%d)", f.name, t))
	return strings.Repeat("a", 64), nil
}

type fakeSpawner struct {
	calls     []string
	mismatch  map[string]bool
	protoLog  []string
}

func (s *fakeSpawner) Spawn(name string) (worker.Protocol, error) {
	s.calls = append(s.calls, name)
	return &fakeWorker{name: name, mismatch: s.mismatch[name], calls: &s.protoLog}, nil
}

func nonDigestLines(out *bytes.Buffer) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if strings.Contains(line, "FINISHED-PROCESS") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func TestS1_SJF_Infinite(t *testing.T) {
	procs := []*pcb.PCB{
		pcb.New("P1", 0, 6, 100),
		pcb.New("P2", 0, 3, 100),
	}
	out := &bytes.Buffer{}
	spawner := &fakeSpawner{}
	e := New(Config{Quantum: 3, Policy: SJF, MemoryMode: Infinite}, procs, spawner, out)

	m, err := e.Run()
	require.NoError(t, err)
	m.EmitLines(out)

	assert.Equal(t, []string{
		"0,RUNNING,process_name=P2,remaining_time=3",
		"3,FINISHED,process_name=P2,proc_remaining=1",
		"3,RUNNING,process_name=P1,remaining_time=6",
		"9,FINISHED,process_name=P1,proc_remaining=0",
		"Turnaround time 6",
		"Time overhead 1.50 1.25",
		"Makespan 9",
	}, nonDigestLines(out))
}

func TestS2_RR_Infinite(t *testing.T) {
	procs := []*pcb.PCB{
		pcb.New("A", 0, 4, 50),
		pcb.New("B", 0, 4, 50),
	}
	out := &bytes.Buffer{}
	spawner := &fakeSpawner{}
	e := New(Config{Quantum: 2, Policy: RR, MemoryMode: Infinite}, procs, spawner, out)

	m, err := e.Run()
	require.NoError(t, err)

	assert.Equal(t, uint32(8), m.Makespan)
	lines := nonDigestLines(out)
	assert.Contains(t, lines, "0,RUNNING,process_name=A,remaining_time=4")
	assert.Contains(t, lines, "2,RUNNING,process_name=B,remaining_time=4")
	assert.Contains(t, lines, "4,RUNNING,process_name=A,remaining_time=2")
	assert.Contains(t, lines, "6,FINISHED,process_name=A,proc_remaining=1")
	assert.Contains(t, lines, "6,RUNNING,process_name=B,remaining_time=2")
	assert.Contains(t, lines, "8,FINISHED,process_name=B,proc_remaining=0")
}

func TestS3_BestFit(t *testing.T) {
	procs := []*pcb.PCB{
		pcb.New("X", 0, 3, 6),
		pcb.New("Y", 0, 3, 4),
		pcb.New("Z", 0, 3, 4),
	}
	out := &bytes.Buffer{}
	spawner := &fakeSpawner{}
	e := New(Config{Quantum: 1, Policy: SJF, MemoryMode: BestFit, MemoryCapacity: 10}, procs, spawner, out)

	_, err := e.Run()
	require.NoError(t, err)

	lines := nonDigestLines(out)
	assert.Contains(t, lines, "0,READY,process_name=X,assigned_at=0")
	assert.Contains(t, lines, "0,READY,process_name=Y,assigned_at=6")
	assert.Contains(t, lines, "3,READY,process_name=Z,assigned_at=0")
	for _, l := range lines {
		assert.NotEqual(t, "0,READY,process_name=Z,assigned_at=0", l, "Z must not be admitted before X frees memory")
	}
}

func TestS5_ProtocolMismatchIsFatal(t *testing.T) {
	procs := []*pcb.PCB{pcb.New("BAD", 0, 3, 10)}
	out := &bytes.Buffer{}
	spawner := &fakeSpawner{mismatch: map[string]bool{"BAD": true}}
	e := New(Config{Quantum: 1, Policy: SJF, MemoryMode: Infinite}, procs, spawner, out)

	_, err := e.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, worker.ErrProtocolMismatch)
}

func TestRREveryPCBEndsInFinishedQueueAfterRun(t *testing.T) {
	procs := []*pcb.PCB{
		pcb.New("A", 0, 4, 50),
		pcb.New("B", 1, 4, 50),
		pcb.New("C", 2, 4, 50),
	}
	out := &bytes.Buffer{}
	spawner := &fakeSpawner{}
	e := New(Config{Quantum: 2, Policy: RR, MemoryMode: Infinite}, procs, spawner, out)

	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, e.finished.Len())
	assert.Equal(t, 0, e.submitted.Len())
	assert.Equal(t, 0, e.input.Len())
	assert.Equal(t, 0, e.ready.Len())
	assert.Equal(t, 0, e.running.Len())
}
