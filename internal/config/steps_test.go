package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tripwizard/internal/config"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    []string
		wantErr error
	}{
		{
			name: "Top-level list",
			yaml: "- label: One\n- label: Two\n  tag: secondary\n",
			want: []string{"One", "Two"},
		},
		{
			name: "Mapping",
			yaml: "steps:\n  - label: Only\n",
			want: []string{"Only"},
		},
		{
			name:    "Empty",
			yaml:    "steps: []\n",
			wantErr: domain.ErrNoSteps,
		},
		{
			name: "Unknown Tag",
			yaml: "- label: One\n  tag: neon\n",
		},
		{
			name: "Missing Label",
			yaml: "- tag: accent\n",
		},
		{
			name: "Unknown Field",
			yaml: "stepz:\n  - label: One\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := config.ParseSteps([]byte(tt.yaml))
			if tt.want == nil {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			require.Len(t, steps, len(tt.want))
			for i, label := range tt.want {
				assert.Equal(t, label, steps[i].Label)
				assert.Equal(t, i, steps[i].Ordinal)
			}
		})
	}
}

func TestLoadSteps(t *testing.T) {
	file := filepath.Join(t.TempDir(), "steps.yaml")
	require.NoError(t, os.WriteFile(file, []byte("- label: Warming up\n  tag: accent\n"), 0o644))

	steps, err := config.LoadSteps(file)
	require.NoError(t, err)
	assert.Equal(t, []domain.Step{{Ordinal: 0, Label: "Warming up", Tag: domain.TagAccent}}, steps)

	_, err = config.LoadSteps(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
