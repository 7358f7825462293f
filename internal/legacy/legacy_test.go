package legacy

import (
	"encoding/binary"
	"testing"
)

// rec builds one record: header plus payload.
func rec(verInstance, recType uint16, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint16(out[0:2], verInstance)
	binary.LittleEndian.PutUint16(out[2:4], recType)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(payload)))
	copy(out[8:], payload)
	return out
}

// fontEntity builds a FontEntityAtom payload: 64-byte UTF-16LE face name
// followed by charset and flag bytes.
func fontEntity(name string) []byte {
	payload := make([]byte, 68)
	for i, r := range name {
		if i >= 32 {
			break
		}
		binary.LittleEndian.PutUint16(payload[i*2:i*2+2], uint16(r))
	}
	return payload
}

// container wraps records in a container header (recVer 0x0F).
func container(recType uint16, inner ...[]byte) []byte {
	var payload []byte
	for _, r := range inner {
		payload = append(payload, r...)
	}
	return rec(0x000F, recType, payload)
}

func TestCollectFontEntities(t *testing.T) {
	// FontCollection container nested inside a Document container, with an
	// unrelated atom in between.
	stream := container(0x03E8, // DocumentContainer
		rec(0x0000, 0x0FA8, []byte("slide text")),
		container(0x07D5, // FontCollectionContainer
			rec(0x0000, recTypeFontEntity, fontEntity("Arial")),
			rec(0x0000, recTypeFontEntity, fontEntity("MS Gothic")),
			rec(0x0000, recTypeFontEntity, fontEntity("ARIAL")), // dup, different case
		),
	)

	got := collectFontEntities(stream)
	want := []string{"Arial", "MS Gothic"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("font[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectFontEntitiesTruncated(t *testing.T) {
	full := rec(0x0000, recTypeFontEntity, fontEntity("Arial"))
	// Header promises more payload than the stream holds.
	truncated := full[:10]
	if got := collectFontEntities(truncated); len(got) != 0 {
		t.Errorf("truncated stream yielded %v", got)
	}
}

func TestDecodeFaceName(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		want    string
	}{
		{"plain", fontEntity("Calibri"), "Calibri"},
		{"max length", fontEntity("ABCDEFGHIJKLMNOPQRSTUVWXYZ123456"), "ABCDEFGHIJKLMNOPQRSTUVWXYZ123456"},
		{"empty", fontEntity(""), ""},
		{"short payload", []byte{0x41, 0x00, 0x00, 0x00}, "A"},
		{"odd length", []byte{0x41}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decodeFaceName(tc.payload); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsCompound(t *testing.T) {
	ole := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}
	if !IsCompound(ole) {
		t.Error("OLE signature not recognized")
	}
	if IsCompound([]byte("PK\x03\x04rest")) {
		t.Error("zip signature misidentified as compound document")
	}
	if IsCompound(nil) {
		t.Error("empty data misidentified")
	}
}
