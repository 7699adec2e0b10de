package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/poptip/internal/model"
)

// ErrThemeNotFound is returned when no user or bundled theme has the name.
var ErrThemeNotFound = errors.New("theme not found")

// Theme is a named style preset.
type Theme struct {
	Name        string      `toml:"name"`
	Description string      `toml:"description"`
	Style       model.Style `toml:"style"`

	Path     string    `toml:"-"` // Empty for embedded themes
	ModTime  time.Time `toml:"-"`
	Embedded bool      `toml:"-"`
}

// Parse decodes a theme document. Style fields it leaves out keep their
// model.DefaultStyle values.
func Parse(data []byte) (*Theme, error) {
	t := &Theme{Style: model.DefaultStyle()}
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if err := t.Style.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTheme loads a theme file. The file's name field wins over name when set.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.Path = path
	t.ModTime = info.ModTime()
	return t, nil
}

// Reload re-reads a file-backed theme if it changed on disk.
// Returns true if the theme was reloaded.
func (t *Theme) Reload() (bool, error) {
	if t.Embedded || t.Path == "" {
		return false, nil
	}
	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	fresh, err := NewTheme(t.Name, t.Path)
	if err != nil {
		return false, err
	}
	*t = *fresh
	return true, nil
}

// ThemesDir returns the path to the user's themes directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ThemesDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "poptip", "themes"), nil
}

// Load resolves a theme by name from the user themes directory, then the
// bundled themes.
func Load(name string) (*Theme, error) {
	dir, err := ThemesDir()
	if err != nil {
		dir = ""
	}
	return LoadFrom(dir, name)
}

// LoadFrom resolves a theme by name from dir, then the bundled themes.
// An empty dir skips user themes.
func LoadFrom(dir, name string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if dir != "" {
		path := filepath.Join(dir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			return NewTheme(name, path)
		}
	}

	data, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	t, err := Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("bundled theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.Embedded = true
	return t, nil
}

// Available returns every theme reachable from dir and the bundle, sorted by
// name. User themes shadow bundled ones; unreadable user files are skipped.
func Available(dir string) []*Theme {
	byName := make(map[string]*Theme)

	for _, name := range ListEmbeddedThemes() {
		if t, err := LoadFrom("", name); err == nil {
			byName[name] = t
		}
	}

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
					continue
				}
				name := strings.TrimSuffix(entry.Name(), ".toml")
				if t, err := NewTheme(name, filepath.Join(dir, entry.Name())); err == nil {
					byName[name] = t
				}
			}
		}
	}

	themes := make([]*Theme, 0, len(byName))
	for _, t := range byName {
		themes = append(themes, t)
	}
	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})
	return themes
}
