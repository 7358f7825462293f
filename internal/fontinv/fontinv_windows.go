//go:build windows

package fontinv

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const fontsKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\Fonts`

// registrySuffixes are the file-type annotations Windows appends to font
// display names in the registry.
var registrySuffixes = []string{" (TrueType)", " (OpenType)", " (All res)", " (VGA res)"}

// systemFamilies enumerates fonts from the registry. Value names look like
// "Arial (TrueType)" or "MS Gothic & MS PGothic (TrueType)" for merged
// entries.
func systemFamilies() ([]string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, fontsKey, registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf("open fonts registry key: %w", err)
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("read fonts registry values: %w", err)
	}

	var families []string
	for _, name := range names {
		for _, sfx := range registrySuffixes {
			name = strings.TrimSuffix(name, sfx)
		}
		for _, part := range strings.Split(name, " & ") {
			if part = strings.TrimSpace(part); part != "" {
				families = append(families, part)
			}
		}
	}
	return families, nil
}
