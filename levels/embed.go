// Package levels embeds the levels shipped with the engine, used by the
// simulation tools and the package tests.
package levels

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/gridlockgames/collider/level"
)

//go:embed *.json
var LevelsFS embed.FS

// Load reads an embedded level by name; the .json extension is optional.
func Load(name string) (*level.Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	lvl, err := level.LoadFS(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	return lvl, nil
}

// Names lists the embedded level files in sorted order.
func Names() []string {
	entries, err := LevelsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
