package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		config       string
		target       string
		expectedExit int
	}{
		{
			name: "success with valid config",
			config: `version: "1"
tasks:
  greet:
    cmd: ["echo", "hello"]
`,
			target:       "greet",
			expectedExit: 0,
		},
		{
			name: "failing task",
			config: `version: "1"
tasks:
  broken:
    cmd: ["sh", "-c", "exit 1"]
`,
			target:       "broken",
			expectedExit: 1,
		},
		{
			name: "unknown target",
			config: `version: "1"
tasks:
  greet:
    cmd: ["echo", "hello"]
`,
			target:       "missing",
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			configPath := tmpDir + "/jig.yaml"
			require.NoError(t, os.WriteFile(configPath, []byte(tt.config), 0o600))

			originalWd, err := os.Getwd()
			require.NoError(t, err)
			require.NoError(t, os.Chdir(tmpDir))
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = []string{"jig", "run", "-c", configPath, tt.target}

			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
