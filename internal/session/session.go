package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aylak/homedesk/internal/config"
)

const sessionFileName = "session.json"

// Session is the persisted authenticated context. The backend identifies the
// actor from the cookie; everything else here is display metadata.
type Session struct {
	Cookie    string    `json:"cookie"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
	Source    string    `json:"source"` // "env" | "file"
	CreatedAt time.Time `json:"created_at"`
}

// Current returns the active session, or nil when not logged in.
// The HOMEDESK_SESSION env var (raw cookie value) overrides the file.
func Current() (*Session, error) {
	// 1) env override
	env := strings.TrimSpace(os.Getenv("HOMEDESK_SESSION"))
	if env != "" {
		return &Session{Cookie: env, Source: "env"}, nil
	}

	// 2) file
	p, err := filePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	s.Source = "file"
	return &s, nil
}

// Save persists the session with owner-only permissions.
func Save(s *Session) error {
	if s == nil || strings.TrimSpace(s.Cookie) == "" {
		return fmt.Errorf("empty session cookie")
	}
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	s.Source = "file"
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	p := filepath.Join(dir, sessionFileName)
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Delete removes the persisted session. Missing file is not an error.
func Delete() error {
	p, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func filePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}
