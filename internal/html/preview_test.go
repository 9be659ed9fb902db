package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keagan/powerhour/internal/source"
)

func TestRenderPreviewEmbedsTimestamps(t *testing.T) {
	chorus := 90.0
	items := []source.Item{
		{Ref: "aaaaaaaaaaa", Title: "Song A", Genre: "Pop", Chorus: &chorus},
		{Ref: "bbbbbbbbbbb"},
	}

	page, err := RenderPreview(items)
	require.NoError(t, err)

	assert.Contains(t, page, "const VIDEO_IDS = ['aaaaaaaaaaa','bbbbbbbbbbb'];")
	assert.Contains(t, page, "const VIDEO_GENRES = ['Pop',''];")
	assert.Contains(t, page, "const VIDEO_CHORUS = [90,null];")
	assert.Contains(t, page, "const VIDEO_STARTS = [null,null];")
	assert.Contains(t, page, "downloadCSV")
	assert.Contains(t, page, "'id','title','genre','chorus','start'")
}

func TestJSNullableSeconds(t *testing.T) {
	assert.Equal(t, "null", jsNullableSeconds(nil))

	v := 42.9
	assert.Equal(t, "42", jsNullableSeconds(&v))

	neg := -1.0
	assert.Equal(t, "0", jsNullableSeconds(&neg))
}
