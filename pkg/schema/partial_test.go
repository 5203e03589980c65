package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPartialSkipsAbsentFields(t *testing.T) {
	cleaned, err := ProductShape.ApplyPartial(map[string]interface{}{"title": "Aurora Desk Lamp"})
	require.NoError(t, err)

	assert.Equal(t, "Aurora Desk Lamp", cleaned["title"])
	_, hasSlug := cleaned["slug"]
	assert.False(t, hasSlug)
	_, hasCurrency := cleaned["currency"]
	assert.False(t, hasCurrency, "partial payloads must not pick up defaults")
}

func TestApplyPartialChecksPresentFields(t *testing.T) {
	_, err := CustomerShape.ApplyPartial(map[string]interface{}{
		"email": "not-an-email",
		"roles": []interface{}{"wizard"},
	})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, verr.Fields, 2)
}

func TestApplyPartialStripsUndeclaredFields(t *testing.T) {
	cleaned, err := ProductShape.ApplyPartial(map[string]interface{}{
		"priceCents": 1299,
		"internal":   true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1299), cleaned["priceCents"])
	_, leaked := cleaned["internal"]
	assert.False(t, leaked)
}
