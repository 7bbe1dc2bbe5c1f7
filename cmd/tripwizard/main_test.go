package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/tripwizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "tripwizard version "+tripwizard.Version+"\n", out)
}

func TestGraphCommand(t *testing.T) {
	out := execute(t, "graph")
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `generating -. "generate_failed" .-> collecting`)
}

func TestStepsCommand(t *testing.T) {
	out := execute(t, "steps", "--env-file", t.TempDir()+"/missing.env")
	assert.Contains(t, out, "Discovering destinations")
	assert.Contains(t, out, "Creating memories")
	assert.Contains(t, out, "form appears at 4.3s (hold 800ms, fade 500ms)")
}

func TestStepsCommand_Interval(t *testing.T) {
	out := execute(t, "steps", "--interval", "500ms", "--env-file", t.TempDir()+"/missing.env")
	assert.Contains(t, out, "form appears at 2.8s")
}
