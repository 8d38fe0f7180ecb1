package descriptor

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load parses and validates a wizard descriptor. TOML is selected by the
// source extension; everything else is tried as JSON first, then YAML.
func Load(data []byte, source string) (Wizard, error) {
	wizard, err := parse(data, source)
	if err != nil {
		return Wizard{}, err
	}
	wizard.Source = source
	if err := Validate(wizard); err != nil {
		return Wizard{}, fmt.Errorf("descriptor: %s: %w", source, err)
	}
	return wizard, nil
}

// LoadFile reads and loads the descriptor at path.
func LoadFile(path string) (Wizard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Wizard{}, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFS walks fsys and loads every descriptor file, keyed by wizard name.
// A file without a name is keyed by its path without extension.
func LoadFS(fsys fs.FS) (map[string]Wizard, error) {
	out := make(map[string]Wizard)
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !IsDescriptorFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("descriptor: read %s: %w", path, err)
		}
		wizard, err := Load(data, path)
		if err != nil {
			return err
		}
		key := strings.TrimSpace(wizard.Name)
		if key == "" {
			key = strings.TrimSuffix(path, filepath.Ext(path))
		}
		if existing, exists := out[key]; exists {
			return fmt.Errorf("descriptor: duplicate wizard %q (files %s and %s)", key, existing.Source, path)
		}
		out[key] = wizard
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Names returns the keys of a LoadFS result in sorted order.
func Names(wizards map[string]Wizard) []string {
	out := make([]string, 0, len(wizards))
	for name := range wizards {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsDescriptorFile reports whether path has a descriptor extension.
func IsDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}

func parse(data []byte, source string) (Wizard, error) {
	var wizard Wizard
	if len(strings.TrimSpace(string(data))) == 0 {
		return Wizard{}, fmt.Errorf("descriptor: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".toml") {
		if err := toml.Unmarshal(data, &wizard); err != nil {
			return Wizard{}, fmt.Errorf("descriptor: parse %s: %w", source, err)
		}
		return wizard, nil
	}

	if err := json.Unmarshal(data, &wizard); err == nil {
		return wizard, nil
	}
	wizard = Wizard{}
	if err := yaml.Unmarshal(data, &wizard); err == nil {
		return wizard, nil
	}

	return Wizard{}, fmt.Errorf("descriptor: parse %s: invalid JSON or YAML", source)
}
