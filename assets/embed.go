package assets

import (
	_ "embed"
)

// DefaultMapName is the map seeded into a fresh maps directory.
const DefaultMapName = "de_dust2"

// DefaultMapYAML contains the starter region set for DefaultMapName.
//
//go:embed maps/de_dust2.yaml
var DefaultMapYAML []byte
