package api

import (
	"bytes"
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the section content.
// It covers Kind and Record only, so two sites holding the same text hash
// alike whatever their versions and timestamps. Insignificant whitespace in
// Record is ignored.
func (s Section) Hash() string {
	h := blake3.New()

	h.Write([]byte(s.Kind))
	h.Write([]byte{0})

	var compact bytes.Buffer
	if err := json.Compact(&compact, s.Record); err == nil {
		h.Write(compact.Bytes())
	} else {
		h.Write(s.Record)
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
