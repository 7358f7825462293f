// Package legacy extracts declared fonts from binary .ppt files (OLE2
// compound documents). The binary format carries a font collection but no
// usable override chain, so analysis of these decks is declaration-level:
// which fonts the file names, not where they are used.
package legacy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"

	"pptfonts/internal/analyze"
	"pptfonts/internal/fonts"
)

// recTypeFontEntity is the FontEntityAtom record type. Its payload starts
// with a 64-byte UTF-16LE face name, zero-terminated.
const recTypeFontEntity = 0x0FB7

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// IsCompound reports whether data starts with the OLE2 compound-document
// signature shared by .ppt, .doc, and .xls files.
func IsCompound(data []byte) bool {
	return len(data) >= len(oleMagic) && bytes.Equal(data[:len(oleMagic)], oleMagic)
}

// DeclaredFonts reads the "PowerPoint Document" stream out of an OLE2
// container and returns the face names of every FontEntityAtom, in
// declaration order, deduplicated case-insensitively.
func DeclaredFonts(data []byte) ([]string, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open compound document: %w", err)
	}

	var pptData []byte
	for {
		entry, nextErr := doc.Next()
		if nextErr != nil {
			break
		}
		if entry.Name == "PowerPoint Document" {
			pptData, _ = io.ReadAll(entry)
		}
	}
	if len(pptData) == 0 {
		return nil, fmt.Errorf("no PowerPoint Document stream: not a binary presentation")
	}
	return collectFontEntities(pptData), nil
}

// collectFontEntities walks the record stream. Record header is 8 bytes:
// recVerInstance(16) + recType(16) + recLen(32), little-endian. Container
// records (recVer == 0x0F) hold sub-records, so the walk descends into
// them by not skipping recLen.
func collectFontEntities(data []byte) []string {
	var names []string
	seen := map[string]struct{}{}
	pos := 0

	for pos+8 <= len(data) {
		recVerInstance := binary.LittleEndian.Uint16(data[pos : pos+2])
		recType := binary.LittleEndian.Uint16(data[pos+2 : pos+4])
		recLen := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		recVer := recVerInstance & 0x0F

		pos += 8
		if recLen > uint32(len(data)-pos) {
			break
		}

		switch {
		case recType == recTypeFontEntity:
			if name := decodeFaceName(data[pos : pos+int(recLen)]); name != "" {
				key := strings.ToLower(name)
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					names = append(names, name)
				}
			}
			pos += int(recLen)
		case recVer == 0x0F:
			// container: descend, sub-records parse on the next iteration
		default:
			pos += int(recLen)
		}
	}
	return names
}

// decodeFaceName decodes the leading UTF-16LE face name of a
// FontEntityAtom payload, stopping at the first NUL.
func decodeFaceName(payload []byte) string {
	if len(payload) > 64 {
		payload = payload[:64]
	}
	u16s := make([]uint16, 0, len(payload)/2)
	for i := 0; i+2 <= len(payload); i += 2 {
		v := binary.LittleEndian.Uint16(payload[i : i+2])
		if v == 0 {
			break
		}
		u16s = append(u16s, v)
	}
	return strings.TrimSpace(string(utf16.Decode(u16s)))
}

// Analyze loads a binary .ppt deck and classifies its declared fonts
// against the inventory. The result carries no slide usage: records have
// an empty slide map and the Legacy flag is set.
func Analyze(path string, inventory []string) (*analyze.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !IsCompound(data) {
		return nil, fmt.Errorf("%s: not an OLE2 compound document", path)
	}

	declared, err := DeclaredFonts(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res := &analyze.Result{
		Path:     path,
		Fonts:    fonts.Usage{},
		Verdicts: map[string]fonts.Verdict{},
		Legacy:   true,
	}
	m := fonts.NewMatcher(inventory)
	for _, name := range declared {
		res.Fonts[name] = &fonts.UsageRecord{Slides: map[int]*fonts.SlideUsage{}}
		res.Verdicts[name] = m.Classify(name)
	}
	return res, nil
}
