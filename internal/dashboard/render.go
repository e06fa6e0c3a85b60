package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/okian/warchest/pkg/logger"
)

const dataJSHeader = "// Generated file, do not edit. Refresh with: warchest sync\n"

// RenderDataJS renders the snapshot as the data.js script the static
// dashboard loads: a single const assignment with the snapshot inlined
// as a JSON literal.
func RenderDataJS(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(dataJSHeader)
	buf.WriteString("const DASHBOARD_DATA = ")
	buf.Write(data)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// WriteDataJS projects the current state and atomically writes the
// rendered data.js to path.
func (p *Projector) WriteDataJS(ctx context.Context, path string) (Snapshot, error) {
	snap, err := p.Project(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	rendered, err := RenderDataJS(snap)
	if err != nil {
		return Snapshot{}, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Snapshot{}, fmt.Errorf("create dashboard directory %q: %w", dir, err)
		}
	}
	if err := renameio.WriteFile(path, rendered, 0o644); err != nil {
		return Snapshot{}, fmt.Errorf("write dashboard data %q: %w", path, err)
	}

	p.log.Info(ctx, "dashboard data written",
		logger.String("path", path),
		logger.Int("feedEntries", len(snap.Feed)))
	return snap, nil
}
