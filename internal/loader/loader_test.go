package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesFourFieldLines(t *testing.T) {
	input := "0 P1 6 100\n0 P2 3 100\n"
	procs, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, procs, 2)

	assert.Equal(t, "P1", procs[0].Name)
	assert.Equal(t, uint32(0), procs[0].ArrivalTime)
	assert.Equal(t, uint32(6), procs[0].ServiceTime)
	assert.Equal(t, uint16(100), procs[0].MemorySize)

	assert.Equal(t, "P2", procs[1].Name)
	assert.Equal(t, uint32(3), procs[1].ServiceTime)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	input := "0 P1 6 100\n\n   \n1 P2 3 100\n"
	procs, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, procs, 2)
}

func TestLoadRejectsWrongFieldCount(t *testing.T) {
	_, err := Load(strings.NewReader("0 P1 6\n"))
	assert.Error(t, err)
}

func TestLoadRejectsMemorySizeOutOfRange(t *testing.T) {
	_, err := Load(strings.NewReader("0 P1 6 0\n"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("0 P1 6 2049\n"))
	assert.Error(t, err)
}

func TestLoadRejectsNonNumericField(t *testing.T) {
	_, err := Load(strings.NewReader("x P1 6 100\n"))
	assert.Error(t, err)
}
