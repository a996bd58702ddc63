package quiz

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCSVPrefix names exports when the caller does not provide a
// prefix.
const DefaultCSVPrefix = "quiz_results"

// ErrNoResults is returned by SaveCSV when the session has no
// evaluated results to write.
var ErrNoResults = errors.New("no results to save")

// SaveCSV writes the result table to a timestamped CSV file under
// ResultsDir, creating the directory if needed. Returns the path of
// the written file.
func (m *Manager) SaveCSV(prefix string) (string, error) {
	if len(m.results) == 0 {
		return "", ErrNoResults
	}
	if prefix == "" {
		prefix = DefaultCSVPrefix
	}

	if err := os.MkdirAll(m.ResultsDir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(m.ResultsDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(ResultColumns); err != nil {
		f.Close()
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range m.ResultTable() {
		if err := w.Write(row); err != nil {
			f.Close()
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	if m.stage == StageEvaluated {
		m.stage = StageSaved
	}
	return path, nil
}
