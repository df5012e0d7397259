package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	accountout "flo8/internal/modules/account/port/out"
	apperrors "flo8/internal/platform/errors"
)

type currentUser struct {
	UserID string `json:"userId"`
}

// FileCurrentUserStore remembers the logged-in profile id in a small JSON
// file next to the database, so a restart lands in the same session.
type FileCurrentUserStore struct {
	path string
}

func NewFileCurrentUserStore(homePath string) accountout.CurrentUserStore {
	return &FileCurrentUserStore{path: filepath.Join(homePath, "current-user.json")}
}

func (s *FileCurrentUserStore) SaveCurrent(_ context.Context, userID string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(currentUser{UserID: userID}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal current user: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write current user: %w", err)
	}
	return nil
}

func (s *FileCurrentUserStore) LoadCurrent(_ context.Context) (string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrNotAuthenticated
		}
		return "", fmt.Errorf("read current user: %w", err)
	}
	state := currentUser{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return "", fmt.Errorf("decode current user: %w", err)
	}
	if state.UserID == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	return state.UserID, nil
}

func (s *FileCurrentUserStore) ClearCurrent(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}
