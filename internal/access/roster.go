// Package access owns the administrator roster. The roster is an explicit,
// injectable object: it is loaded once at startup and every mutation is
// persisted synchronously so a restart reconstructs the same set.
package access

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/m3rciful/servicebot/internal/logger"
	"log/slog"
)

// Roster is the set of user ids with administrator privileges.
// The persisted form is a single comma-delimited string of ids.
type Roster struct {
	mu   sync.RWMutex
	ids  []int64
	path string
}

// Load builds a roster from the persisted file, falling back to the seed ids
// when the file does not exist yet. A corrupt file keeps the entries parsed
// before the bad one and reports the rest, matching the record store's
// recovery policy of serving what it can.
func Load(path string, seed []int64) (*Roster, error) {
	r := &Roster{path: path}
	ctx := logger.Background()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		ids, parseErr := parseIDs(string(data))
		if parseErr != nil {
			logger.Warn(ctx, "access", "roster.load",
				slog.String("status", "fail"),
				slog.String("path", path),
				slog.String("err", parseErr.Error()),
			)
		}
		r.ids = ids
	case os.IsNotExist(err):
		r.ids = append([]int64(nil), seed...)
		if len(seed) > 0 {
			if persistErr := r.persistLocked(); persistErr != nil {
				return nil, fmt.Errorf("persist seeded roster: %w", persistErr)
			}
		}
	default:
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	logger.Info(ctx, "access", "roster.load",
		slog.String("status", "ok"),
		slog.String("path", path),
		slog.Int("count", len(r.ids)),
	)
	return r, nil
}

// IsAdmin reports whether the user id is on the roster.
func (r *Roster) IsAdmin(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.ids {
		if id == userID {
			return true
		}
	}
	return false
}

// IDs returns a copy of the roster in insertion order.
func (r *Roster) IDs() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]int64(nil), r.ids...)
}

// Add appends a new administrator and persists the roster.
// It returns false when the id is already present.
func (r *Roster) Add(userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.ids {
		if id == userID {
			return false, nil
		}
	}
	r.ids = append(r.ids, userID)
	if err := r.persistLocked(); err != nil {
		// roll back the in-memory change so memory and disk stay in sync
		r.ids = r.ids[:len(r.ids)-1]
		return false, err
	}
	logger.Info(logger.Background(), "access", "roster.add",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int("count", len(r.ids)),
	)
	return true, nil
}

// Remove deletes an administrator and persists the roster.
// It returns false when the id is absent.
func (r *Roster) Remove(userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, id := range r.ids {
		if id == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	removed := r.ids[idx]
	r.ids = append(r.ids[:idx], r.ids[idx+1:]...)
	if err := r.persistLocked(); err != nil {
		rest := append([]int64{removed}, r.ids[idx:]...)
		r.ids = append(r.ids[:idx], rest...)
		return false, err
	}
	logger.Info(logger.Background(), "access", "roster.remove",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int("count", len(r.ids)),
	)
	return true, nil
}

func (r *Roster) persistLocked() error {
	parts := make([]string, 0, len(r.ids))
	for _, id := range r.ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	payload := strings.Join(parts, ",")

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(payload), 0o644); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace roster: %w", err)
	}
	return nil
}

func parseIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return ids, fmt.Errorf("invalid roster entry %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
