package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omkar-jagtap8443/Talk-genius/report"
)

// mkOutputDir creates the per-session directory that rendered charts go to.
func mkOutputDir(outputsRoot, sid string) (string, error) {
	if outputsRoot == "" {
		outputsRoot = "outputs"
	}
	dir := filepath.Join(outputsRoot, "session_"+sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (p *Pipeline) persist(ctx context.Context, r *report.Report) error {
	if p.store == nil {
		return errors.New("no report store configured")
	}
	if err := p.store.Save(ctx, r); err != nil {
		return fmt.Errorf("save report %s: %w", r.SessionID, err)
	}
	return nil
}
