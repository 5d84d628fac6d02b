package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/expandgo/internal/app"
	"github.com/vk/expandgo/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// RunOptions tweaks a harness run.
type RunOptions struct {
	Vars   map[string]string
	Format string // defaults to "hcl"
}

// HarnessResult holds the outcomes of an end-to-end run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
}

// RunApp provides a standardized harness for end-to-end tests: it writes the
// given files into a temporary directory, runs the full pipeline over it,
// and captures rendered output and logs separately.
func RunApp(t *testing.T, files map[string]string, opts *RunOptions) *HarnessResult {
	t.Helper()
	if opts == nil {
		opts = &RunOptions{}
	}

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: tmpDir,
		Vars:       opts.Vars,
		Format:     opts.Format,
		LogFormat:  "text",
		LogLevel:   "debug",
	})
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	a := app.NewApp(out, logs, cfg, hcl.NewLoader())
	runErr := a.Run(context.Background())

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
	}
}
