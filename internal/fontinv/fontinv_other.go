//go:build !linux && !windows && !darwin

package fontinv

import "fmt"

func systemFamilies() ([]string, error) {
	return nil, fmt.Errorf("font enumeration is not supported on this platform")
}
