// Package result persists benchmark cells as one JSON file per
// (model, scenario) pair under a timestamped run directory, so a run can be
// re-reported or re-judged later without re-running any model.
package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/markm8/synthbench/internal/bench"
)

// CreateRunDir makes a fresh timestamped run directory under baseDir/runs
// and points baseDir/latest at it.
func CreateRunDir(baseDir string) (string, error) {
	runsDir := filepath.Join(baseDir, "runs")
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	runDir := filepath.Join(runsDir, stamp)
	runDir, err := filepath.Abs(runDir)
	if err != nil {
		return "", fmt.Errorf("resolving run dir: %w", err)
	}
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run dir: %w", err)
	}
	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(runDir, latest); err != nil {
		return "", fmt.Errorf("creating latest symlink: %w", err)
	}
	return runDir, nil
}

// CellPath returns where one cell's JSON lives inside a run directory.
// Model names contain slashes (provider/model), which become underscores
// so each model stays a single directory level.
func CellPath(runDir, model, scenarioID string) string {
	return filepath.Join(runDir, "cells", strings.ReplaceAll(model, "/", "_"), scenarioID+".json")
}

// WriteCell persists one cell, creating parent directories as needed.
func WriteCell(runDir string, cell *bench.Cell) error {
	path := CellPath(runDir, cell.Model, cell.ScenarioID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cell dir: %w", err)
	}
	data, err := json.MarshalIndent(cell, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cell: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadCell loads one persisted cell.
func ReadCell(path string) (*bench.Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cell: %w", err)
	}
	var cell bench.Cell
	if err := json.Unmarshal(data, &cell); err != nil {
		return nil, fmt.Errorf("parsing cell %s: %w", path, err)
	}
	return &cell, nil
}

// CollectCells loads every cell in a run directory, grouped by model. Cell
// files are walked in lexical order, so scenarios within a model come back
// in a stable order.
func CollectCells(runDir string) (map[string][]bench.Cell, error) {
	cells := make(map[string][]bench.Cell)
	cellsDir := filepath.Join(runDir, "cells")
	err := filepath.Walk(cellsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		cell, err := ReadCell(path)
		if err != nil {
			return err
		}
		cells[cell.Model] = append(cells[cell.Model], *cell)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting cells: %w", err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("no cells found in %s", runDir)
	}
	return cells, nil
}
