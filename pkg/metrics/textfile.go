package metrics

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// WriteTextfile dumps the global registry in the Prometheus text format
// to path, atomically. Warchest processes are short-lived cron runs with
// no listener to scrape, so metrics are handed to the node_exporter
// textfile collector instead.
func WriteTextfile(path string) error {
	return writeTextfile(customRegistry, path)
}

// WriteTextfileTo is WriteTextfile for a specific manager's registry.
func (m *Manager) WriteTextfileTo(path string) error {
	return writeTextfile(m.registry, path)
}

func writeTextfile(g prometheus.Gatherer, path string) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return fmt.Errorf("encode metric family %q: %w", mf.GetName(), err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	// The textfile collector reads whole files; a half-written dump must
	// never be visible, same rule as the state documents.
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
