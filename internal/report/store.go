package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/greenops/carbonscan/internal/detect"
)

// Store is the persistence seam for scan results. The engine itself never
// persists anything; callers hand batches to whatever Store implementation
// their deployment uses.
type Store interface {
	Save(ctx context.Context, detections []detect.EnrichedDeployment, projectID, source string) error
}

// savedBatch is the on-disk record for one Save call.
type savedBatch struct {
	ProjectID  string                      `json:"projectId"`
	Source     string                      `json:"source"`
	SavedAt    time.Time                   `json:"savedAt"`
	Summary    Summary                     `json:"summary"`
	Detections []detect.EnrichedDeployment `json:"detections"`
}

// JSONLinesStore appends one JSON record per Save call to a local file. It
// backs the CLI; server deployments substitute their own Store.
type JSONLinesStore struct {
	path   string
	logger zerolog.Logger
}

// NewJSONLinesStore creates a store writing to the given file path.
func NewJSONLinesStore(path string, logger zerolog.Logger) *JSONLinesStore {
	return &JSONLinesStore{path: path, logger: logger}
}

// Save appends the batch with its summary as a single JSON line.
func (s *JSONLinesStore) Save(ctx context.Context, detections []detect.EnrichedDeployment, projectID, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	record := savedBatch{
		ProjectID:  projectID,
		Source:     source,
		SavedAt:    time.Now().UTC(),
		Summary:    Summarize(detections),
		Detections: detections,
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal detection batch: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open store file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn().Str("path", s.path).Err(cerr).Msg("failed to close store file")
		}
	}()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write detection batch: %w", err)
	}

	s.logger.Info().
		Str("path", s.path).
		Str("project_id", projectID).
		Int("detections", len(detections)).
		Msg("detection batch saved")

	return nil
}
