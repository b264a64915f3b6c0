package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSection_Hash(t *testing.T) {
	now := time.Now().UTC()

	base := Section{
		Kind:      KindAbout,
		Version:   3,
		Record:    json.RawMessage(`{"heading":"About","body":"One.\\n\\nTwo."}`),
		UpdatedAt: now,
	}

	t.Run("identical sections produce identical hashes", func(t *testing.T) {
		s1 := base
		s2 := base
		assert.Equal(t, s1.Hash(), s2.Hash())
		assert.Len(t, s1.Hash(), 64)
	})

	t.Run("version and time do not matter", func(t *testing.T) {
		s2 := base
		s2.Version = 9
		s2.UpdatedAt = now.Add(time.Hour)
		assert.Equal(t, base.Hash(), s2.Hash())
	})

	t.Run("whitespace in record is ignored", func(t *testing.T) {
		s2 := base
		s2.Record = json.RawMessage("{\n  \"heading\": \"About\",\n  \"body\": \"One.\\\\n\\\\nTwo.\"\n}")
		assert.Equal(t, base.Hash(), s2.Hash())
	})

	t.Run("different content produces different hashes", func(t *testing.T) {
		s2 := base
		s2.Record = json.RawMessage(`{"heading":"About us","body":"One.\\n\\nTwo."}`)

		s3 := base
		s3.Kind = KindHistory

		assert.NotEqual(t, base.Hash(), s2.Hash())
		assert.NotEqual(t, base.Hash(), s3.Hash())
	})

	t.Run("summary carries the hash", func(t *testing.T) {
		assert.Equal(t, base.Hash(), base.Summary().Hash)
	})
}
