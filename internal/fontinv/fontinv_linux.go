//go:build linux

package fontinv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// defaultFontDirs are scanned when fontconfig is unavailable.
var defaultFontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
}

// systemFamilies enumerates font families via fc-list, falling back to a
// directory scan when fontconfig is not installed.
func systemFamilies() ([]string, error) {
	fcList, err := exec.LookPath("fc-list")
	if err != nil {
		return scanFontDirs(fontDirs())
	}
	out, err := exec.Command(fcList, "--format", "%{family}\n").Output()
	if err != nil {
		return scanFontDirs(fontDirs())
	}
	return parseFamilyList(string(out)), nil
}

func fontDirs() []string {
	dirs := defaultFontDirs
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, ".local/share/fonts"))
	}
	return dirs
}

// scanFontDirs walks font directories and derives family names from file
// names. Best-effort only; real family metadata needs fontconfig.
func scanFontDirs(dirs []string) ([]string, error) {
	var families []string
	found := false
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if fontFileExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
				found = true
				if f := familyFromFilename(d.Name()); f != "" {
					families = append(families, f)
				}
			}
			return nil
		})
	}
	if !found {
		return families, fmt.Errorf("no fonts found (fc-list unavailable, no font files under %v)", dirs)
	}
	return families, nil
}
