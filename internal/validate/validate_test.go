package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khryptorgraphics/procsim/internal/engine"
	"github.com/khryptorgraphics/procsim/internal/pcb"
)

func TestPolicyAcceptsKnownValues(t *testing.T) {
	p, err := Policy("SJF")
	require.NoError(t, err)
	assert.Equal(t, engine.SJF, p)

	p, err = Policy("RR")
	require.NoError(t, err)
	assert.Equal(t, engine.RR, p)
}

func TestPolicyRejectsUnknown(t *testing.T) {
	_, err := Policy("fifo")
	assert.Error(t, err)
}

func TestMemoryModeAcceptsKnownValues(t *testing.T) {
	m, err := MemoryMode("infinite")
	require.NoError(t, err)
	assert.Equal(t, engine.Infinite, m)

	m, err = MemoryMode("best-fit")
	require.NoError(t, err)
	assert.Equal(t, engine.BestFit, m)
}

func TestQuantumAcceptsOnlyOneTwoThree(t *testing.T) {
	for _, q := range []int{1, 2, 3} {
		_, err := Quantum(q)
		assert.NoError(t, err)
	}
	_, err := Quantum(4)
	assert.Error(t, err)
	_, err = Quantum(0)
	assert.Error(t, err)
}

func TestDescriptorsRejectsEmpty(t *testing.T) {
	err := Descriptors(nil)
	assert.Error(t, err)
}

func TestDescriptorsRejectsDuplicateNames(t *testing.T) {
	procs := []*pcb.PCB{
		pcb.New("P1", 0, 1, 10),
		pcb.New("P1", 1, 1, 10),
	}
	err := Descriptors(procs)
	assert.Error(t, err)
}

func TestDescriptorsRejectsUnsortedArrival(t *testing.T) {
	procs := []*pcb.PCB{
		pcb.New("P1", 5, 1, 10),
		pcb.New("P2", 1, 1, 10),
	}
	err := Descriptors(procs)
	assert.Error(t, err)
}

func TestDescriptorsAcceptsWellFormedList(t *testing.T) {
	procs := []*pcb.PCB{
		pcb.New("P1", 0, 1, 10),
		pcb.New("P2", 0, 1, 10),
		pcb.New("P3", 2, 1, 10),
	}
	assert.NoError(t, Descriptors(procs))
}
