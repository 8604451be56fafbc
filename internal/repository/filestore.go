package repository

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/antonvlasov/airline/pkg/logger"
	"github.com/antonvlasov/airline/pkg/metrics"
)

// fileStore keeps one collection as delimited text, one record per
// line. Loads tolerate bad lines; saves are write-then-replace so a
// failed write never corrupts the previous durable copy.
type fileStore struct {
	path   string
	entity string
	log    logger.Logger
	m      *metrics.Metrics
}

// readRows returns one field slice per parseable line. A missing file
// is created empty. Unparseable lines are skipped with a warning.
func (s *fileStore) readRows() ([][]string, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := csv.NewReader(strings.NewReader(line)).Read()
		if err != nil {
			s.skip(line, err)
			continue
		}
		rows = append(rows, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return rows, nil
}

func (s *fileStore) skip(line string, err error) {
	s.log.Warn("skipping invalid record", "entity", s.entity, "line", line, "error", err)
	if s.m != nil {
		s.m.SkippedRecords.WithLabelValues(s.entity).Inc()
	}
}

// writeRows rewrites the full collection through a temp file in the
// same directory, then renames it over the target.
func (s *fileStore) writeRows(rows [][]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := filepath.Join(dir, filepath.Base(s.path)+"."+uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("write %s: %w", s.entity, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", s.entity, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
