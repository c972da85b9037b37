package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	config, shouldExit, err := Parse([]string{"report.md"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "report.md", config.TemplatePath)
	assert.Equal(t, "metrics", config.MetricsPath)
	assert.Equal(t, "", config.OutputPath)
	assert.Equal(t, "", config.Date)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
}

func TestParseAllFlags(t *testing.T) {
	config, shouldExit, err := Parse([]string{
		"-metrics", "data/",
		"-o", "out.md",
		"-date", "2022-02-04",
		"-log-format", "JSON",
		"-log-level", "DEBUG",
		"report.md",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "data/", config.MetricsPath)
	assert.Equal(t, "out.md", config.OutputPath)
	assert.Equal(t, "2022-02-04", config.Date)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestParseNoArgsPrintsUsage(t *testing.T) {
	output := &bytes.Buffer{}
	config, shouldExit, err := Parse(nil, output)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, output.String(), "TEMPLATE_PATH")
}

func TestParseHelpFlag(t *testing.T) {
	_, shouldExit, err := Parse([]string{"-h"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, shouldExit)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "two positionals", args: []string{"a.md", "b.md"}, expected: "exactly one TEMPLATE_PATH"},
		{name: "bad log format", args: []string{"-log-format", "xml", "report.md"}, expected: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "verbose", "report.md"}, expected: "invalid log-level"},
		{name: "bad date", args: []string{"-date", "04/02/2022", "report.md"}, expected: "invalid -date"},
		{name: "unknown flag", args: []string{"-bogus", "report.md"}, expected: "flag provided but not defined"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.expected)
		})
	}
}
