package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marathonviz/domain/core"
)

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for _, key := range []string{"RACE_DISTANCE_KM", "ANIMATION_INTERVAL_MINUTES", "COMPETITION_NAME", "VARIANTS_FILE"} {
		t.Setenv(key, values[key])
	}
	t.Setenv("LOG_LEVEL", "ERROR")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCountriesCommand(t *testing.T) {
	setEnv(t, nil)
	dir := t.TempDir()
	in := filepath.Join(dir, "records.csv")
	out := filepath.Join(dir, "animation.csv")
	require.NoError(t, os.WriteFile(in, []byte("COUNTRY,RESULT,NAME\nKenya,2:01:39,Eliud Kipchoge\nEstonia,2:11:15,Ibrahim Mukunga\n"), 0o644))

	_, err := execute(t, "countries", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	// 3 entities (2 countries + median) over 133 checkpoints plus the header
	assert.Len(t, lines, 1+3*133)
	assert.True(t, strings.HasPrefix(lines[0], "CONTINENT\tCOUNTRY\tRESULT\tNAME\tHOUR"))
	assert.True(t, strings.HasPrefix(lines[1], "Europe\tEstonia\t2:11:15"))
}

func TestRunCommandWithVariantsFile(t *testing.T) {
	dir := t.TempDir()
	variants := filepath.Join(dir, "variants.yaml")
	require.NoError(t, os.WriteFile(variants, []byte(`
variants:
  - name: plain
    id_column: NAME
    finish_time_column: TIME
    animation_interval: 30
`), 0o644))
	setEnv(t, map[string]string{"VARIANTS_FILE": variants, "RACE_DISTANCE_KM": "10"})

	in := filepath.Join(dir, "in.tsv")
	out := filepath.Join(dir, "out.tsv")
	require.NoError(t, os.WriteFile(in, []byte("NAME\tTIME\nAnna\t0:40:00\n"), 0o644))

	_, err := execute(t, "run", "plain", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1+3)
	assert.Equal(t, "NAME\tTIME\tHOUR\tMINUTE\tSECOND\tSEC_TOTAL\tSEC_PER_KM\tMIN_PER_KM\tKM_PER_H\tPOSITION\tSPENT_TIME_MIN\tPASSED_DISTANCE_KM", lines[0])
	assert.Equal(t, "Anna\t0:40:00\t0\t40\t0\t2400\t240.0\t4:0\t15.0\t-2400\t60\t10.0", lines[3])
}

func TestVariantsCommand(t *testing.T) {
	setEnv(t, nil)

	output, err := execute(t, "variants")
	require.NoError(t, err)
	assert.Contains(t, output, "countries")
	assert.Contains(t, output, "individuals")
}

func TestCommandErrors(t *testing.T) {
	setEnv(t, map[string]string{"RACE_DISTANCE_KM": "zero"})
	_, err := execute(t, "countries", "in.csv", "out.csv")
	assert.ErrorIs(t, err, core.ErrConfiguration)

	setEnv(t, nil)
	_, err = execute(t, "run", "relay", "in.csv", "out.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available variants: countries, individuals")

	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")
	_, err = execute(t, "countries", filepath.Join(dir, "missing.csv"), out)
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestFormatError(t *testing.T) {
	setEnv(t, map[string]string{"RACE_DISTANCE_KM": "zero"})
	_, err := execute(t, "countries", "in.csv", "out.csv")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(formatError(err), "[CONFIG_INVALID] "))

	setEnv(t, nil)
	_, err = execute(t, "countries", "only-one-arg.csv")
	require.Error(t, err)
	assert.Equal(t, err.Error(), formatError(err))
	assert.False(t, strings.HasPrefix(formatError(err), "["))
}
