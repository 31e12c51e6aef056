/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams(t *testing.T) {
	content := `# pipeline params
threads: 8
min_length: 2000
min_quality: 9
sample_fraction: 0.5
racon_rounds: 3
medaka_model: r941_min_sup_g507
flye_extra: --meta --scaffold
`
	path := filepath.Join(t.TempDir(), "params.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := ReadParams(path)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Threads)
	assert.Equal(t, 2000, p.MinLength)
	assert.Equal(t, 9.0, p.MinQuality)
	assert.Equal(t, 0.5, p.SampleFrac)
	assert.Equal(t, 3, p.RaconRounds)
	assert.Equal(t, "r941_min_sup_g507", p.MedakaModel)
	assert.Equal(t, []string{"--meta", "--scaffold"}, p.FlyeExtra)
}

func TestReadParamsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.txt")
	require.NoError(t, os.WriteFile(path, []byte("medaka_model: custom\n"), 0644))

	p, err := ReadParams(path)
	require.NoError(t, err)
	def := DefaultParams()
	assert.Equal(t, def.Threads, p.Threads)
	assert.Equal(t, def.MinLength, p.MinLength)
	assert.Equal(t, "custom", p.MedakaModel)
}

func TestReadParamsBadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.txt")
	require.NoError(t, os.WriteFile(path, []byte("threads: lots\n"), 0644))

	_, err := ReadParams(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threads")
}

func TestCheckDeps(t *testing.T) {
	// Anything on a linux box has ls; nothing has this.
	assert.NoError(t, CheckDeps("ls"))

	err := CheckDeps("definitely-not-a-real-assembler-binary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-assembler-binary")
}

func TestRunCmdToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, RunCmdToFile(out, "echo", "hello"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestRunCmdVerboseFailure(t *testing.T) {
	err := RunCmdVerbose("false")
	assert.Error(t, err)
}
