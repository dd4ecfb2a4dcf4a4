package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

// AuditStore persists the per-file outcomes of a reduction run.
type AuditStore interface {
	SaveAudit(ctx context.Context, path m.Path, summary m.Summary, outcomes []m.FileOutcome) error
}

// YAMLAuditStore writes the audit as a YAML document.
type YAMLAuditStore struct {
	now func() time.Time
}

var _ AuditStore = (*YAMLAuditStore)(nil)

// NewYAMLAuditStore constructs a YAMLAuditStore.
func NewYAMLAuditStore() *YAMLAuditStore {
	return &YAMLAuditStore{now: time.Now}
}

type auditDocument struct {
	GeneratedAt string        `yaml:"generated_at"`
	Project     string        `yaml:"project"`
	Cutoff      int64         `yaml:"cutoff_revision"`
	Policy      string        `yaml:"policy"`
	Totals      auditTotals   `yaml:"totals"`
	Files       []auditRecord `yaml:"files"`
}

type auditTotals struct {
	Files           int `yaml:"files"`
	Reduced         int `yaml:"reduced"`
	Dropped         int `yaml:"dropped"`
	Failed          int `yaml:"failed"`
	RemovedElements int `yaml:"removed_elements"`
	RemovedCovered  int `yaml:"removed_covered_elements"`
}

type auditRecord struct {
	Name            string `yaml:"name"`
	Path            string `yaml:"path"`
	Status          string `yaml:"status"`
	Revision        int64  `yaml:"revision,omitempty"`
	RemovedElements int    `yaml:"removed_elements,omitempty"`
	RemovedCovered  int    `yaml:"removed_covered_elements,omitempty"`
	StaleLines      []int  `yaml:"stale_lines,omitempty,flow"`
	Error           string `yaml:"error,omitempty"`
}

// SaveAudit writes the audit document to path.
func (s *YAMLAuditStore) SaveAudit(ctx context.Context, path m.Path, summary m.Summary, outcomes []m.FileOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := auditDocument{
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Project:     summary.Project,
		Cutoff:      int64(summary.Cutoff),
		Policy:      string(summary.Policy),
		Totals: auditTotals{
			Files:           summary.Files,
			Reduced:         summary.Reduced,
			Dropped:         summary.Dropped,
			Failed:          summary.Failed,
			RemovedElements: summary.Removed.Elements,
			RemovedCovered:  summary.Removed.CoveredElements,
		},
		Files: make([]auditRecord, 0, len(outcomes)),
	}

	for _, o := range outcomes {
		doc.Files = append(doc.Files, auditRecord{
			Name:            o.QualifiedName(),
			Path:            string(o.Path),
			Status:          o.Status.String(),
			Revision:        int64(o.Revision),
			RemovedElements: o.Removed.Elements,
			RemovedCovered:  o.Removed.CoveredElements,
			StaleLines:      o.StaleLines,
			Error:           o.Error,
		})
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		slog.Error("Failed to encode audit", "path", path, "error", err)
		return fmt.Errorf("encode audit: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode audit: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}

	if err := os.WriteFile(string(path), buf.Bytes(), 0o600); err != nil {
		slog.Error("Failed to write audit", "path", path, "error", err)
		return fmt.Errorf("write audit: %w", err)
	}

	return nil
}
