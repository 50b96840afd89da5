package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soocke/minimap-caller-go/domain/callout"
)

// MapConfig is one map's named region set.
type MapConfig struct {
	MapName string
	Regions []callout.Region
}

// mapFile is the on-disk YAML shape.
type mapFile struct {
	MapName string       `yaml:"map_name"`
	Regions []regionFile `yaml:"regions"`
}

type regionFile struct {
	Name    string      `yaml:"name"`
	Polygon [][]float64 `yaml:"polygon"`
}

// MapStore reads and writes per-map region files under a single directory,
// one <map_name>.yaml per map.
type MapStore struct {
	dir string
}

// NewMapStore creates the maps directory if needed.
func NewMapStore(dir string) (*MapStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create maps dir: %w", err)
	}
	return &MapStore{dir: dir}, nil
}

// Dir returns the maps directory.
func (s *MapStore) Dir() string { return s.dir }

// ListMapNames returns available map names sorted by file stem.
func (s *MapStore) ListMapNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: list maps: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads the config for mapName. A missing file is an error.
func (s *MapStore) Load(mapName string) (*MapConfig, error) {
	path, err := s.PathForMap(mapName)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("store: map config not found: %s: %w", path, err)
	}
	return s.LoadPath(path)
}

// LoadPath reads a map config by full path. Missing fields default:
// an absent map_name falls back to the file stem.
func (s *MapStore) LoadPath(path string) (*MapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read map config: %w", err)
	}
	var mf mapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("store: parse map config %s: %w", path, err)
	}
	name := strings.TrimSpace(mf.MapName)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".yaml")
	}
	cfg := &MapConfig{MapName: name}
	for _, r := range mf.Regions {
		region := callout.Region{Name: r.Name}
		for _, pt := range r.Polygon {
			if len(pt) < 2 {
				return nil, fmt.Errorf("store: region %q has a malformed polygon point", r.Name)
			}
			region.Polygon = append(region.Polygon, callout.Point{X: pt[0], Y: pt[1]})
		}
		cfg.Regions = append(cfg.Regions, region)
	}
	return cfg, nil
}

// Save writes cfg as <map_name>.yaml and returns the path. Region names
// must be unique within the map.
func (s *MapStore) Save(cfg *MapConfig) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("store: nil map config")
	}
	if err := validateRegionNames(cfg.Regions); err != nil {
		return "", err
	}
	path, err := s.PathForMap(cfg.MapName)
	if err != nil {
		return "", err
	}
	mf := mapFile{MapName: cfg.MapName}
	for _, region := range cfg.Regions {
		rf := regionFile{Name: region.Name}
		for _, p := range region.Polygon {
			rf.Polygon = append(rf.Polygon, []float64{p.X, p.Y})
		}
		mf.Regions = append(mf.Regions, rf)
	}
	data, err := yaml.Marshal(&mf)
	if err != nil {
		return "", fmt.Errorf("store: encode map config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store: write map config: %w", err)
	}
	return path, nil
}

// PathForMap maps a map name to its config file path. Spaces become
// underscores; an empty name is an error.
func (s *MapStore) PathForMap(mapName string) (string, error) {
	safe := strings.ReplaceAll(strings.TrimSpace(mapName), " ", "_")
	if safe == "" {
		return "", fmt.Errorf("store: map name must not be empty")
	}
	return filepath.Join(s.dir, safe+".yaml"), nil
}

// SeedDefault writes data as the config for mapName unless one already
// exists. Used to install the embedded starter map on first run.
func (s *MapStore) SeedDefault(mapName string, data []byte) error {
	path, err := s.PathForMap(mapName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}

func validateRegionNames(regions []callout.Region) error {
	seen := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return fmt.Errorf("store: region name must not be empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("store: duplicate region name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
