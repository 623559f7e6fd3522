package store

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
)

var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrCreatorExists   = errors.New("creator already configured")
	ErrCreatorNotFound = errors.New("creator not configured")
)

// ConfigDocument maps platform -> creator handle -> settings.
// Handle comparison is exact-string, case-sensitive as stored.
type ConfigDocument map[Platform]map[string]*CreatorConfig

// Validate rejects documents with unknown platforms or empty entries so
// malformed files fail loudly at load time instead of deep in a poller
func (d ConfigDocument) Validate() error {
	for platform, creators := range d {
		if !platform.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
		}
		for handle, cfg := range creators {
			if handle == "" {
				return fmt.Errorf("platform %s: empty creator handle", platform)
			}
			if cfg == nil {
				return fmt.Errorf("platform %s: creator %q has no settings", platform, handle)
			}
		}
	}
	return nil
}

func defaultConfigDocument() ConfigDocument {
	doc := make(ConfigDocument, len(Platforms))
	for _, p := range Platforms {
		doc[p] = make(map[string]*CreatorConfig)
	}
	return doc
}

// ConfigStore owns the notification configuration document
type ConfigStore struct {
	mu   sync.Mutex
	path string
}

// NewConfigStore creates a config store rooted in dataDir
func NewConfigStore(dataDir string) *ConfigStore {
	return &ConfigStore{path: filepath.Join(dataDir, "config.json")}
}

// load must be called with s.mu held
func (s *ConfigStore) load() (ConfigDocument, error) {
	doc := defaultConfigDocument()
	found, err := readDocument(s.path, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		// First run: persist the defaults so the file exists
		if err := writeDocument(s.path, doc); err != nil {
			slog.Error("Failed to create default config", "error", err)
		}
		return doc, nil
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	for _, p := range Platforms {
		if doc[p] == nil {
			doc[p] = make(map[string]*CreatorConfig)
		}
	}
	return doc, nil
}

// Snapshot returns a deep copy of the current configuration
func (s *ConfigStore) Snapshot() (ConfigDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(ConfigDocument, len(doc))
	for platform, creators := range doc {
		out[platform] = make(map[string]*CreatorConfig, len(creators))
		for handle, cfg := range creators {
			c := *cfg
			out[platform][handle] = &c
		}
	}
	return out, nil
}

// PlatformCreators returns a copy of one platform's creator settings
func (s *ConfigStore) PlatformCreators(platform Platform) (map[string]*CreatorConfig, error) {
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	doc, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc[platform], nil
}

// AddCreator registers a new creator with the given settings
func (s *ConfigStore) AddCreator(platform Platform, handle string, cfg CreatorConfig) error {
	if !platform.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc[platform][handle]; ok {
		return fmt.Errorf("%w: %s/%s", ErrCreatorExists, platform, handle)
	}
	doc[platform][handle] = &cfg
	return writeDocument(s.path, doc)
}

// RemoveCreator deletes a creator's configuration
func (s *ConfigStore) RemoveCreator(platform Platform, handle string) error {
	if !platform.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc[platform][handle]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrCreatorNotFound, platform, handle)
	}
	delete(doc[platform], handle)
	return writeDocument(s.path, doc)
}

// UpdateCreator applies fn to a creator's settings and persists the result
func (s *ConfigStore) UpdateCreator(platform Platform, handle string, fn func(*CreatorConfig)) error {
	if !platform.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	cfg, ok := doc[platform][handle]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrCreatorNotFound, platform, handle)
	}
	fn(cfg)
	return writeDocument(s.path, doc)
}
