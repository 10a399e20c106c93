package styleguide

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"voice-ghostwriter/internal/domain"
)

// ErrProfileLocked is returned when a derived-stats update hits a locked
// profile and force was not requested.
var ErrProfileLocked = errors.New("style profile is locked")

// LoadProfile reads the style-profile document. A missing file yields a zero
// profile so callers can bootstrap one; malformed JSON is an error.
func LoadProfile(path string) (domain.StyleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.StyleProfile{}, nil
		}
		return domain.StyleProfile{}, fmt.Errorf("read style profile: %w", err)
	}
	var profile domain.StyleProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return domain.StyleProfile{}, fmt.Errorf("parse style profile: %w", err)
	}
	return profile, nil
}

// SaveProfile writes the profile as indented JSON.
func SaveProfile(path string, profile domain.StyleProfile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("encode style profile: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write style profile: %w", err)
	}
	return nil
}

// UpdateDerived overwrites the derived section of the profile at path. The
// hand-authored sections are preserved. A locked profile blocks the update
// unless force is set.
func UpdateDerived(path string, stats domain.DerivedStats, force bool) error {
	profile, err := LoadProfile(path)
	if err != nil {
		return err
	}
	if profile.Locked && !force {
		return ErrProfileLocked
	}
	profile.Derived = stats
	return SaveProfile(path, profile)
}
