package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gotest.tools/v3/fs"
)

func Test_Run_Usage(t *testing.T) {
	var stdout, stderr strings.Builder

	assert.Equal(t, 1, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: creditsync")

	stderr.Reset()
	assert.Equal(t, 1, run(context.Background(), []string{"deploy"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "deploy"`)

	assert.Equal(t, 0, run(context.Background(), []string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "export-sheet")
}

func Test_Run_MissingConfigFile(t *testing.T) {
	var stdout, stderr strings.Builder
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	assert.Equal(t, 1, run(context.Background(), []string{"merge", "-config", missing}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Failed to load configuration")
}

func Test_Run_ExportSheetToStdout(t *testing.T) {
	dir := fs.NewDir(t, "creditsync",
		fs.WithFile("creditsync.yaml", "log_level: error\n"),
		fs.WithFile("projects.json", `{"projects": [{"id": 1, "title": "Topos", "year": 2021, "category": "film"}]}`),
	)

	var stdout, stderr strings.Builder
	code := run(context.Background(), []string{"export-sheet", "-config", dir.Join("creditsync.yaml"), "-catalog", dir.Join("projects.json"), "-o", "-"}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "1,Topos,2021,film,"))
}

func Test_Run_HistoryWithoutLedger(t *testing.T) {
	dir := fs.NewDir(t, "creditsync", fs.WithFile("creditsync.yaml", "ledger:\n  path: \"\"\n"))

	var stdout, stderr strings.Builder
	assert.Equal(t, 1, run(context.Background(), []string{"history", "-config", dir.Join("creditsync.yaml")}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "ledger is disabled")
}
