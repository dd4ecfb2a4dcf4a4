package adapter

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// ErrEmptyReport is returned when a report has no <project> element.
var ErrEmptyReport = errors.New("report has no project")

// ReportStore loads and persists coverage reports.
type ReportStore interface {
	LoadReport(ctx context.Context, path m.Path) (*m.Coverage, error)
	SaveReport(ctx context.Context, path m.Path, coverage *m.Coverage) error
}

// XMLReportStore reads and writes Clover XML reports.
type XMLReportStore struct{}

var _ ReportStore = (*XMLReportStore)(nil)

// NewXMLReportStore constructs an XMLReportStore.
func NewXMLReportStore() *XMLReportStore {
	return &XMLReportStore{}
}

// LoadReport decodes the report at path.
func (s *XMLReportStore) LoadReport(ctx context.Context, path m.Path) (*m.Coverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(string(path))
	if err != nil {
		slog.Error("Failed to open report", "path", path, "error", err)
		return nil, fmt.Errorf("open report: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	var coverage m.Coverage
	if err := xml.NewDecoder(f).Decode(&coverage); err != nil {
		slog.Error("Failed to decode report", "path", path, "error", err)
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	if coverage.Project == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyReport)
	}

	slog.Debug("Loaded report", "path", path, "packages", len(coverage.Project.Packages))

	return &coverage, nil
}

// SaveReport encodes coverage as indented XML and writes it to path, creating the
// parent directory when needed.
func (s *XMLReportStore) SaveReport(ctx context.Context, path m.Path, coverage *m.Coverage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")

	if err := encoder.Encode(coverage); err != nil {
		slog.Error("Failed to encode report", "path", path, "error", err)
		return fmt.Errorf("encode report: %w", err)
	}

	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		slog.Error("Failed to create report directory", "path", path, "error", err)
		return fmt.Errorf("create report directory: %w", err)
	}

	if err := os.WriteFile(string(path), buf.Bytes(), 0o644); err != nil { //nolint:gosec // reports are meant to be shared
		slog.Error("Failed to write report", "path", path, "error", err)
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
