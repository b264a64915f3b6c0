package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"hero":         KindHero,
		" HERO ":       KindHero,
		"get-involved": KindGetInvolved,
		"Get_Involved": KindGetInvolved,
		"ministers":    KindMinisters,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("heor")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestContentKinds(t *testing.T) {
	all := []Content{Hero{}, About{}, History{}, Ministers{}, Events{}, GetInvolved{}}
	require.Len(t, all, len(Kinds()))
	for i, c := range all {
		assert.Equal(t, Kinds()[i], c.Kind())
	}
	assert.Equal(t, "get_involved", KindNames()[5])
}
