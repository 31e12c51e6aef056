/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package utils

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// NewPipelineLogger returns a logger that writes text to the terminal and
// JSON lines to the run log file, plus the file handle to close when the
// run finishes. The JSON file is what ParseLogFile reads back on resume.
func NewPipelineLogger(logFilePath string) (*slog.Logger, *os.File, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slogmulti.Fanout(
		slog.NewTextHandler(os.Stderr, nil),
		slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}),
	))
	return logger, logFile, nil
}

// LogEntry is one line of the JSON run log.
type LogEntry struct {
	Timestamp string `json:"time"`
	Level     string `json:"level"`
	Tool      string `json:"msg"`
	Program   string `json:"PROGRAM"`
	Sample    string `json:"SAMPLE"`
	Status    string `json:"STATUS"`
}

// ParseLogFile reads a JSON run log back into entries. A missing file is not
// an error: it just means nothing has run yet.
func ParseLogFile(logFilePath string) []LogEntry {
	file, err := os.Open(logFilePath)
	if err != nil {
		return nil
	}
	defer file.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry LogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// StageHasCompleted reports whether a pipeline stage already finished for a
// sample in a previous run, so it can be skipped on resume.
func StageHasCompleted(entries []LogEntry, program string, sample string) bool {
	for _, entry := range entries {
		if entry.Program == program && entry.Sample == sample && entry.Status == "COMPLETED" {
			return true
		}
	}
	return false
}
