package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/model"
)

const snapshotDirLayout = "20060102_150405"

// SnapshotWriter persists one timestamped JSON snapshot directory per run, so
// every run's inputs and outputs stay reviewable after the fact.
type SnapshotWriter struct {
	baseDir string
	now     func() time.Time
}

// NewSnapshotWriter creates a writer rooted at baseDir.
func NewSnapshotWriter(baseDir string) *SnapshotWriter {
	return &SnapshotWriter{baseDir: baseDir, now: time.Now}
}

// WriteRun writes the run envelope and its per-client conversion payloads
// under a fresh timestamped directory, returning the directory path.
func (w *SnapshotWriter) WriteRun(env *model.RunEnvelope) (string, error) {
	dir := filepath.Join(w.baseDir, w.now().Format(snapshotDirLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "snapshot: create %s", dir)
	}

	if err := writeJSON(filepath.Join(dir, "run.json"), env); err != nil {
		return "", err
	}

	if len(env.Clients) > 0 {
		if err := writeJSON(filepath.Join(dir, "clients.json"), env.Clients); err != nil {
			return "", err
		}
	}
	if len(env.Matches) > 0 {
		if err := writeJSON(filepath.Join(dir, "matches.json"), env.Matches); err != nil {
			return "", err
		}
	}
	if len(env.Plans) > 0 {
		if err := writeJSON(filepath.Join(dir, "content_plans.json"), env.Plans); err != nil {
			return "", err
		}
	}

	if len(env.Conversions) > 0 {
		convDir := filepath.Join(dir, "conversions")
		if err := os.MkdirAll(convDir, 0o755); err != nil {
			return "", eris.Wrapf(err, "snapshot: create %s", convDir)
		}
		for _, conv := range env.Conversions {
			name := sanitizeFilename(conv.ClientName) + ".json"
			if err := writeJSON(filepath.Join(convDir, name), conv); err != nil {
				return "", err
			}
		}
		if err := writeJSON(filepath.Join(dir, "conversions.json"), env.Conversions); err != nil {
			return "", err
		}
	}

	if len(env.Submissions) > 0 {
		if err := writeJSON(filepath.Join(dir, "submissions.json"), env.Submissions); err != nil {
			return "", err
		}
	}

	zap.L().Info("snapshot: run persisted", zap.String("dir", dir))
	return dir, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "snapshot: marshal %s", filepath.Base(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "snapshot: write %s", path)
	}
	return nil
}

// sanitizeFilename keeps client names safe as file names.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unnamed"
	}
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	return replacer.Replace(name)
}
