// Package fontinv enumerates the font families installed on the local
// machine. Each platform has its own enumeration source (fontconfig,
// registry, system_profiler); the engine treats the result as an opaque
// set of display names.
package fontinv

import (
	"path/filepath"
	"sort"
	"strings"
)

// Installed returns the installed font family names merged with extra,
// deduplicated case-insensitively (first spelling wins) and sorted.
// Enumeration failure is returned alongside whatever could be collected:
// an empty inventory degrades every deck font to Missing, it does not
// abort the analysis.
func Installed(extra []string) ([]string, error) {
	families, err := systemFamilies()
	families = append(families, extra...)

	seen := make(map[string]struct{}, len(families))
	out := make([]string, 0, len(families))
	for _, f := range families {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out, err
}

// parseFamilyList splits fc-list family output: one font per line, with
// comma-separated localized spellings of the same family.
func parseFamilyList(out string) []string {
	var families []string
	for _, line := range strings.Split(out, "\n") {
		for _, name := range strings.Split(line, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				families = append(families, name)
			}
		}
	}
	return families
}

// fontFileExtensions are the file types considered by the directory-scan
// fallback.
var fontFileExtensions = map[string]bool{
	".ttf": true, ".otf": true, ".ttc": true, ".otc": true, ".pfb": true,
}

// familyFromFilename derives a best-effort family name from a font file
// name ("DejaVuSans-Bold.ttf" -> "DejaVuSans Bold"). The normalized
// matching step absorbs the drift this introduces.
func familyFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
