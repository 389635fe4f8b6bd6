package sensors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileProvider reads a snapshot fixture from disk on every call, so edits to the
// file are picked up on the next refresh.
type FileProvider struct {
	path     string
	validate *validator.Validate
	log      *slog.Logger
}

// NewFileProvider creates a provider backed by a YAML or JSON snapshot file.
func NewFileProvider(path string, log *slog.Logger) *FileProvider {
	return &FileProvider{path: path, validate: validator.New(), log: log}
}

// Snapshot decodes the snapshot file. Files ending in .json are decoded as JSON,
// everything else as YAML.
func (fp *FileProvider) Snapshot(ctx context.Context) (*models.TrafficSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fp.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	snapshot := &models.TrafficSnapshot{}
	if strings.EqualFold(filepath.Ext(fp.path), ".json") {
		err = json.Unmarshal(data, snapshot)
	} else {
		err = yaml.Unmarshal(data, snapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot file %s: %w", fp.path, err)
	}

	if err = fp.validate.Struct(snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFeedInvalidSnapshot, err)
	}

	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now()
	}

	fp.log.DebugContext(ctx, "Snapshot loaded from file", "path", fp.path, "regions", len(snapshot.Regions))

	return snapshot, nil
}
