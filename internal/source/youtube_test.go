package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"  dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"https://example.com/clip", "https://example.com/clip"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractVideoID(tt.in), "input %q", tt.in)
	}
}

func TestReadYouTubeList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	content := "# party list\nhttps://youtu.be/aaaaaaaaaaa\n\nbbbbbbbbbbb\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	items, err := ReadYouTubeList(path)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "aaaaaaaaaaa", items[0].Ref)
	assert.Equal(t, "bbbbbbbbbbb", items[1].Ref)
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadYouTubeCSVCanonicalHeaders(t *testing.T) {
	path := writeTempCSV(t, `id,title,genre,chorus,start
aaaaaaaaaaa,Song A,Pop,1:30,
bbbbbbbbbbb,Song B,,,20
`)

	items, err := ReadYouTubeCSV(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "aaaaaaaaaaa", items[0].Ref)
	assert.Equal(t, "Song A", items[0].Title)
	assert.Equal(t, "Pop", items[0].Genre)
	require.NotNil(t, items[0].Chorus)
	assert.Equal(t, 90.0, *items[0].Chorus)
	assert.Nil(t, items[0].Start)

	assert.Nil(t, items[1].Chorus)
	require.NotNil(t, items[1].Start)
	assert.Equal(t, 20.0, *items[1].Start)
}

func TestReadYouTubeCSVFuzzyHeaders(t *testing.T) {
	path := writeTempCSV(t, `Video URL,Track Name,Chorus Time (mm:ss)
https://youtu.be/aaaaaaaaaaa,Song A,0:45
`)

	items, err := ReadYouTubeCSV(path)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "aaaaaaaaaaa", items[0].Ref)
	assert.Equal(t, "Song A", items[0].Title)
	require.NotNil(t, items[0].Chorus)
	assert.Equal(t, 45.0, *items[0].Chorus)
}

func TestReadYouTubeCSVIDPreferredOverURL(t *testing.T) {
	path := writeTempCSV(t, `id,url
ccccccccccc,https://youtu.be/ddddddddddd
`)

	items, err := ReadYouTubeCSV(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ccccccccccc", items[0].Ref)
}

func TestReadYouTubeCSVDropsRowsWithoutRef(t *testing.T) {
	path := writeTempCSV(t, `id,title
aaaaaaaaaaa,Song A
,No Ref Here
`)

	items, err := ReadYouTubeCSV(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "aaaaaaaaaaa", items[0].Ref)
}

func TestReadYouTubeCSVBadTimestampsAreAbsent(t *testing.T) {
	path := writeTempCSV(t, `id,chorus,start
aaaaaaaaaaa,not-a-time,later
`)

	items, err := ReadYouTubeCSV(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Chorus)
	assert.Nil(t, items[0].Start)
}

func TestReadYouTubeCSVRaggedRows(t *testing.T) {
	path := writeTempCSV(t, `id,title,genre
aaaaaaaaaaa,Song A
bbbbbbbbbbb,Song B,Pop
`)

	items, err := ReadYouTubeCSV(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Empty(t, items[0].Genre)
	assert.Equal(t, "Pop", items[1].Genre)
}
