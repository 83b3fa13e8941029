package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// Storage keeps templates as one YAML file each in a directory,
// by default ~/.thingsctl/templates/.
type Storage struct {
	dir string
}

// NewStorage opens the default template directory, creating it if
// needed.
func NewStorage() (*Storage, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, thingsctl.ConfigError("could not resolve home directory", err)
	}
	dir := filepath.Join(home, ".thingsctl", "templates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, thingsctl.ConfigError("could not create template directory", err)
	}
	return &Storage{dir: dir}, nil
}

// NewStorageAt uses an explicit directory.
func NewStorageAt(dir string) *Storage {
	return &Storage{dir: dir}
}

func (s *Storage) path(name string) string {
	return filepath.Join(s.dir, sanitizeName(name)+".yaml")
}

// sanitizeName maps a template name onto a safe filename.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// Save writes a template, assigning an ID and creation time on first
// save.
func (s *Storage) Save(p *Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return thingsctl.Wrap(thingsctl.ErrTemplate, "could not serialize template", err)
	}
	if err := os.WriteFile(s.path(p.Name), data, 0o644); err != nil {
		return thingsctl.Wrap(thingsctl.ErrTemplate, "could not write template", err)
	}
	return nil
}

// Load reads a template by name.
func (s *Storage) Load(name string) (*Project, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, thingsctl.NotFoundError(fmt.Sprintf("no template named %q", name))
	}
	if err != nil {
		return nil, thingsctl.Wrap(thingsctl.ErrTemplate, "could not read template", err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, thingsctl.Wrap(thingsctl.ErrTemplate,
			fmt.Sprintf("could not parse template %q", name), err)
	}
	return &p, nil
}

// Delete removes a template by name.
func (s *Storage) Delete(name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return thingsctl.NotFoundError(fmt.Sprintf("no template named %q", name))
	}
	if err != nil {
		return thingsctl.Wrap(thingsctl.ErrTemplate, "could not delete template", err)
	}
	return nil
}

// Exists reports whether a template with the name is stored.
func (s *Storage) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// List loads every stored template, sorted by name.
func (s *Storage) List() ([]*Project, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, thingsctl.Wrap(thingsctl.ErrTemplate, "could not read template directory", err)
	}

	var templates []*Project
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, thingsctl.Wrap(thingsctl.ErrTemplate, "could not read template", err)
		}
		var p Project
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, thingsctl.Wrap(thingsctl.ErrTemplate,
				fmt.Sprintf("could not parse template file %s", entry.Name()), err)
		}
		templates = append(templates, &p)
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}
