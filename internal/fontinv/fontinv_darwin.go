//go:build darwin

package fontinv

import (
	"fmt"
	"os/exec"

	"howett.net/plist"
)

// spEntry mirrors the system_profiler SPFontsDataType plist layout: a
// top-level array with one entry whose _items list the installed fonts.
type spEntry struct {
	Items []spFont `plist:"_items"`
}

type spFont struct {
	Typefaces []spTypeface `plist:"typefaces"`
}

type spTypeface struct {
	Family string `plist:"family"`
	Name   string `plist:"_name"`
}

// systemFamilies enumerates fonts via system_profiler's plist output.
func systemFamilies() ([]string, error) {
	out, err := exec.Command("system_profiler", "-xml", "SPFontsDataType").Output()
	if err != nil {
		return nil, fmt.Errorf("system_profiler: %w", err)
	}

	var entries []spEntry
	if _, err := plist.Unmarshal(out, &entries); err != nil {
		return nil, fmt.Errorf("parse font profile plist: %w", err)
	}

	var families []string
	for _, e := range entries {
		for _, f := range e.Items {
			for _, tf := range f.Typefaces {
				if tf.Family != "" {
					families = append(families, tf.Family)
				}
			}
		}
	}
	return families, nil
}
