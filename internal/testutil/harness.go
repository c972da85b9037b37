// Package testutil provides the end-to-end render harness used by
// integration tests: it materializes metric files and a template into a
// temp directory, runs the full app pipeline, and captures output and
// logs.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/reportgridgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
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

// HarnessResult holds the outcomes of an end-to-end render run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
}

// RenderReport runs the whole pipeline: metricFiles are written under a
// temp metrics/ directory, template becomes the report source, and date
// (may be empty) is the reference date. Startup panics are recovered
// into Err so tests can assert on bad fixtures.
func RenderReport(t *testing.T, metricFiles map[string]string, template string, date string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	metricsDir := filepath.Join(tmpDir, "metrics")
	require.NoError(t, os.Mkdir(metricsDir, 0755))
	for name, content := range metricFiles {
		require.NoError(t, os.WriteFile(filepath.Join(metricsDir, name), []byte(content), 0644))
	}
	templatePath := filepath.Join(tmpDir, "report.md")
	require.NoError(t, os.WriteFile(templatePath, []byte(template), 0644))

	config, err := app.NewConfig(app.Config{
		TemplatePath: templatePath,
		MetricsPath:  metricsDir,
		Date:         date,
		LogFormat:    "text",
		LogLevel:     "debug",
	})
	require.NoError(t, err)

	outBuffer := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}

	var reportApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		reportApp = app.NewApp(context.Background(), outBuffer, logBuffer, config)
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := reportApp.Run(context.Background())
	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
}
