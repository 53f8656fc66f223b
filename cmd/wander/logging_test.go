package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, logFile := setupLogging(false)
	require.NotNil(t, logger)
	assert.Nil(t, logFile, "Expected nil log file when debug=false")

	logger.Info("discarded")
	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "Expected no logs directory when debug=false")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, logFile := setupLogging(true)
	require.NotNil(t, logFile, "Expected non-nil log file when debug=true")
	defer logFile.Close()

	logPath := filepath.Join(logDir, logFileName)
	require.FileExists(t, logPath)

	logger.Info("Test log message")
	require.NoError(t, logger.Sync())

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Size(), "Expected log file to contain content")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Test log message")
}

func TestSetupLogging_Rotation(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(logDir, 0755))

	logPath := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644))

	_, logFile := setupLogging(true)
	require.NotNil(t, logFile)
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	assert.True(t, rotatedFound, "Expected to find rotated log file")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(maxLogSize))
}
