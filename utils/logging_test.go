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

func TestParseLogFileAndStageHasCompleted(t *testing.T) {
	logContent := `{"time":"2025-06-18T21:11:02.572267197+02:00","level":"INFO","msg":"ASSEMBLY","PROGRAM":"INITIALISE","SAMPLE":"barley_01","STATUS":"STARTED"}
{"time":"2025-06-18T21:11:03.397122518+02:00","level":"INFO","msg":"ASSEMBLY","PROGRAM":"FILTER","SAMPLE":"barley_01","STATUS":"STARTED"}
{"time":"2025-06-18T21:14:09.124962114+02:00","level":"INFO","msg":"ASSEMBLY","PROGRAM":"FILTER","SAMPLE":"barley_01","STATUS":"COMPLETED"}
{"time":"2025-06-18T21:14:10.019476930+02:00","level":"INFO","msg":"ASSEMBLY","PROGRAM":"FLYE","SAMPLE":"barley_01","STATUS":"STARTED"}
not a json line
{"time":"2025-06-18T23:40:17.308876904+02:00","level":"ERROR","msg":"ASSEMBLY","PROGRAM":"FLYE","SAMPLE":"barley_01","STATUS":"FAILED: exit status 1"}
`
	logFilePath := filepath.Join(t.TempDir(), "pipeline.log")
	require.NoError(t, os.WriteFile(logFilePath, []byte(logContent), 0644))

	entries := ParseLogFile(logFilePath)
	require.Len(t, entries, 5, "non-JSON lines are skipped")
	assert.Equal(t, "ASSEMBLY", entries[0].Tool)
	assert.Equal(t, "FILTER", entries[1].Program)
	assert.Equal(t, "barley_01", entries[1].Sample)

	assert.True(t, StageHasCompleted(entries, "FILTER", "barley_01"))
	assert.False(t, StageHasCompleted(entries, "FLYE", "barley_01"))
	assert.False(t, StageHasCompleted(entries, "FILTER", "barley_02"))
}

func TestParseLogFileMissing(t *testing.T) {
	entries := ParseLogFile(filepath.Join(t.TempDir(), "nope.log"))
	assert.Empty(t, entries)
}

func TestNewPipelineLogger(t *testing.T) {
	logFilePath := filepath.Join(t.TempDir(), "run.log")
	logger, logFile, err := NewPipelineLogger(logFilePath)
	require.NoError(t, err)

	logger.Info("ASSEMBLY", "PROGRAM", "FLYE", "SAMPLE", "barley_01", "STATUS", "COMPLETED")
	require.NoError(t, logFile.Close())

	entries := ParseLogFile(logFilePath)
	require.Len(t, entries, 1)
	assert.True(t, StageHasCompleted(entries, "FLYE", "barley_01"))
}
