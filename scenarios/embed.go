// Package scenarios embeds the stock scenario scripts shipped with the
// engine's tools.
package scenarios

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.tengo
var FS embed.FS

// Load returns the source of a named scenario. The .tengo extension is
// optional.
func Load(name string) ([]byte, error) {
	if !strings.HasSuffix(name, ".tengo") {
		name += ".tengo"
	}
	src, err := FS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("scenarios: %w", err)
	}
	return src, nil
}

// Names lists the embedded scenarios, sorted, without extensions.
func Names() []string {
	entries, err := FS.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".tengo") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	sort.Strings(names)
	return names
}
