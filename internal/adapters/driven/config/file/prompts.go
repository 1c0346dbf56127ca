package file

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

var _ driven.PromptStore = (*PromptStore)(nil)

var readme = template.Must(template.New("readme").Parse(`# Screener Prompts

Templates used by the résumé assistant. Edit a file to change its behaviour;
a running ` + "`screener serve`" + ` picks up the change without a restart.

## Files
{{range .}}
- ` + "`{{.}}.txt`" + `{{end}}

## Placeholders

Templates use Go fmt ` + "`%s`" + ` verbs. Keep the same number of verbs in the same order.
Deleting a file restores the built-in default.
`))

// PromptStore reads prompt overrides from <dir>/<name>.txt. The directory
// is seeded with the defaults on first use; files that already exist are
// left alone. A missing, empty or unreadable file falls back to the default.
type PromptStore struct {
	dir      string
	defaults map[string]string

	seedOnce sync.Once

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore uses ~/.screener/prompts when dir is empty.
func NewPromptStore(dir string, defaults map[string]string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".screener", "prompts")
	}
	return &PromptStore{
		dir:      dir,
		defaults: maps.Clone(defaults),
		cache:    make(map[string]string),
	}, nil
}

func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(s.seed)

	s.mu.RLock()
	p, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := s.read(name)
	if err == nil {
		s.mu.Lock()
		if cached, ok := s.cache[name]; ok {
			p = cached
		} else {
			s.cache[name] = p
		}
		s.mu.Unlock()
		return p, nil
	}

	if def, ok := s.defaults[name]; ok {
		return def, nil
	}
	return "", fmt.Errorf("load prompt %q: %w", name, err)
}

// Reload forgets cached overrides.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

func (s *PromptStore) Dir() string { return s.dir }

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

func (s *PromptStore) read(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	p := strings.TrimSpace(string(data))
	if p == "" {
		return "", errors.New("empty prompt file")
	}
	return p, nil
}

// seed writes the default files and README. Failures only mean overrides
// are unavailable, so they are not reported to callers.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return
	}
	for name, content := range s.defaults {
		_ = createIfMissing(s.path(name), func(f *os.File) error {
			_, err := f.WriteString(content)
			return err
		})
	}
	names := slices.Sorted(maps.Keys(s.defaults))
	_ = createIfMissing(filepath.Join(s.dir, "README.md"), func(f *os.File) error {
		return readme.Execute(f, names)
	})
}

func createIfMissing(path string, write func(*os.File) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
