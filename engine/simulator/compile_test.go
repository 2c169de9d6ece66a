package simulator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohager/signum-smartc-testbed/engine/simulator"
	"github.com/ohager/signum-smartc-testbed/types"
)

// constProbe exposes its seeded globals for compile-step assertions.
type constProbe struct{}

func (*constProbe) Globals() []string {
	return []string{"percentage", "text", "limit"}
}

func (*constProbe) Execute(simulator.Environment, []types.Transaction) {}

func newProbeSimulator() *simulator.Simulator {
	programs := simulator.NewRegistry()
	programs.Register("Probe", func() simulator.Program {
		return &constProbe{}
	})
	return simulator.New(simulator.WithPrograms(programs))
}

func memoryOf(t *testing.T, sim *simulator.Simulator, address uint64) map[string]int64 {
	t.Helper()

	for _, c := range sim.Contracts() {
		if c.Address == address {
			memory := make(map[string]int64, len(c.Memory))
			for _, entry := range c.Memory {
				memory[entry.VarName] = entry.Value
			}
			return memory
		}
	}

	t.Fatalf("no contract at address %d", address)
	return nil
}

func TestCompileAppliesActiveConstants(t *testing.T) {
	source := `#program name Probe
#define TESTBED
#ifdef TESTBED
  const TESTBED_percentage = 20;
  const TESTBED_text = "ok";
#endif
long percentage;
long text;
long limit;
#ifdef TESTBED
    const percentage = TESTBED_percentage;
    const text = TESTBED_text;
#endif
const limit = 10_0000;
`
	sim := newProbeSimulator()
	address, err := sim.DeployContract(source)
	require.NoError(t, err)

	memory := memoryOf(t, sim, address)
	assert.Equal(t, int64(20), memory["percentage"])
	assert.Equal(t, int64('o')|int64('k')<<8, memory["text"])
	assert.Equal(t, int64(100000), memory["limit"])
}

func TestCompileSkipsInactiveGuard(t *testing.T) {
	source := `#program name Probe
long percentage;
#ifdef TESTBED
    const percentage = 99;
#endif
`
	sim := newProbeSimulator()
	address, err := sim.DeployContract(source)
	require.NoError(t, err)

	memory := memoryOf(t, sim, address)
	assert.Equal(t, int64(0), memory["percentage"])
}

func TestCompileIfndef(t *testing.T) {
	source := `#program name Probe
#ifndef TESTBED
    const limit = 7;
#endif
`
	sim := newProbeSimulator()
	address, err := sim.DeployContract(source)
	require.NoError(t, err)

	memory := memoryOf(t, sim, address)
	assert.Equal(t, int64(7), memory["limit"])
}

func TestCompileMissingProgramName(t *testing.T) {
	sim := newProbeSimulator()
	_, err := sim.DeployContract("long percentage;\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#program name")
}
