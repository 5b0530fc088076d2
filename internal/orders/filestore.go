package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/m3rciful/servicebot/internal/logger"
	"log/slog"
)

// FileStore keeps the whole order collection in a single JSON file.
// Writes replace the file atomically via a temp file and rename.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the given JSON file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadAll reads the full snapshot. A missing or corrupt file is treated as
// an empty store and reported with a warning: an operator should look at
// the file, but no session handler ever fails because of it.
func (s *FileStore) LoadAll(ctx context.Context) ([]Order, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Order{}, nil
		}
		logger.Warn(ctx, "store", "load.unreadable",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return []Order{}, nil
	}
	if len(data) == 0 {
		return []Order{}, nil
	}

	var list []Order
	if err := json.Unmarshal(data, &list); err != nil {
		logger.Warn(ctx, "store", "load.corrupt",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return []Order{}, nil
	}
	return list, nil
}

// SaveAll replaces the stored snapshot with the provided one.
func (s *FileStore) SaveAll(ctx context.Context, list []Order) error {
	if list == nil {
		list = []Order{}
	}
	data, err := json.MarshalIndent(list, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write orders: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace orders: %w", err)
	}
	logger.Debug(ctx, "store", "save",
		slog.String("path", s.path),
		slog.Int("count", len(list)),
	)
	return nil
}
