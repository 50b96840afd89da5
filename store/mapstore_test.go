package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/minimap-caller-go/domain/callout"
)

func testRegions() []callout.Region {
	return []callout.Region{
		callout.BuildRectRegion("A Site", 0, 0, 10, 10),
		callout.BuildRectRegion("Mid", 20, 20, 40, 40),
	}
}

func TestMapStore_SaveLoadRoundTrip(t *testing.T) {
	s, err := NewMapStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := &MapConfig{MapName: "de_dust2", Regions: testRegions()}
	path, err := s.Save(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "de_dust2.yaml" {
		t.Fatalf("unexpected file name: %s", path)
	}

	loaded, err := s.Load("de_dust2")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.MapName != "de_dust2" {
		t.Fatalf("map name lost: %q", loaded.MapName)
	}
	if len(loaded.Regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(loaded.Regions))
	}
	for i, want := range cfg.Regions {
		got := loaded.Regions[i]
		if got.Name != want.Name {
			t.Fatalf("region %d name: want %q got %q", i, want.Name, got.Name)
		}
		if len(got.Polygon) != len(want.Polygon) {
			t.Fatalf("region %d polygon size: want %d got %d", i, len(want.Polygon), len(got.Polygon))
		}
		for j := range want.Polygon {
			if got.Polygon[j] != want.Polygon[j] {
				t.Fatalf("region %d point %d: want %+v got %+v", i, j, want.Polygon[j], got.Polygon[j])
			}
		}
	}
}

func TestMapStore_ListMapNamesSorted(t *testing.T) {
	s, _ := NewMapStore(t.TempDir())
	for _, name := range []string{"de_mirage", "de_dust2", "de_inferno"} {
		if _, err := s.Save(&MapConfig{MapName: name}); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.ListMapNames()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"de_dust2", "de_inferno", "de_mirage"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestMapStore_LoadMissingMapFails(t *testing.T) {
	s, _ := NewMapStore(t.TempDir())
	if _, err := s.Load("absent"); err == nil {
		t.Fatal("loading a missing map must fail")
	}
}

func TestMapStore_PathForMap(t *testing.T) {
	s, _ := NewMapStore(t.TempDir())
	path, err := s.PathForMap("my map name")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "my_map_name.yaml" {
		t.Fatalf("spaces should become underscores: %s", path)
	}
	if _, err := s.PathForMap("   "); err == nil {
		t.Fatal("blank map name must be rejected")
	}
}

func TestMapStore_DuplicateRegionNamesRejected(t *testing.T) {
	s, _ := NewMapStore(t.TempDir())
	cfg := &MapConfig{MapName: "m", Regions: []callout.Region{
		callout.BuildRectRegion("Mid", 0, 0, 1, 1),
		callout.BuildRectRegion("Mid", 2, 2, 3, 3),
	}}
	if _, err := s.Save(cfg); err == nil {
		t.Fatal("duplicate region names must be rejected")
	}
}

func TestMapStore_MapNameDefaultsToFileStem(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewMapStore(dir)
	path := filepath.Join(dir, "de_nuke.yaml")
	if err := os.WriteFile(path, []byte("regions:\n  - name: Ramp\n    polygon: [[0,0],[4,0],[4,4],[0,4]]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := s.LoadPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MapName != "de_nuke" {
		t.Fatalf("expected file stem as map name, got %q", cfg.MapName)
	}
	if len(cfg.Regions) != 1 || cfg.Regions[0].Name != "Ramp" {
		t.Fatalf("unexpected regions: %+v", cfg.Regions)
	}
}

func TestMapStore_SeedDefaultDoesNotOverwrite(t *testing.T) {
	s, _ := NewMapStore(t.TempDir())
	if err := s.SeedDefault("de_dust2", []byte("map_name: de_dust2\nregions: []\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(&MapConfig{MapName: "de_dust2", Regions: testRegions()}); err != nil {
		t.Fatal(err)
	}
	if err := s.SeedDefault("de_dust2", []byte("map_name: de_dust2\nregions: []\n")); err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Load("de_dust2")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Regions) != 2 {
		t.Fatal("seeding must not overwrite an existing map file")
	}
}

func TestMapStore_MalformedPolygonPoint(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewMapStore(dir)
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("map_name: bad\nregions:\n  - name: X\n    polygon: [[1]]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadPath(path); err == nil {
		t.Fatal("single-coordinate points must be rejected")
	}
}
