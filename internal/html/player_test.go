package html

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keagan/powerhour/internal/playlist"
)

func TestRenderPlayerEmbedsPlaylist(t *testing.T) {
	entries := []playlist.Entry{
		{VideoID: "aaaaaaaaaaa", Title: "Song A", Start: 30},
		{VideoID: "bbbbbbbbbbb", Title: "Song B", Start: 0},
	}

	page, err := RenderPlayer(entries, PlayerConfig{ClipSeconds: 60, TitleRevealDelay: 5})
	require.NoError(t, err)

	assert.Contains(t, page, "const VIDEO_IDS = ['aaaaaaaaaaa','bbbbbbbbbbb'];")
	assert.Contains(t, page, "const VIDEO_TITLES = ['Song A','Song B'];")
	assert.Contains(t, page, "const VIDEO_STARTS = [30.000,0.000];")
	assert.Contains(t, page, "const CLIP_SECONDS = 60.000;")
	assert.Contains(t, page, "const TITLE_REVEAL_DELAY = 5.000;")
	assert.Contains(t, page, "setInterval(checkPlaybackTime, 500)")
	assert.Contains(t, page, "youtube.com/iframe_api")
}

func TestRenderPlayerNegativeStartClamps(t *testing.T) {
	entries := []playlist.Entry{{VideoID: "aaaaaaaaaaa", Start: -3}}

	page, err := RenderPlayer(entries, PlayerConfig{ClipSeconds: 60})
	require.NoError(t, err)

	assert.Contains(t, page, "const VIDEO_STARTS = [0.000];")
}

func TestJSStringEscaping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"it's", `'it\u0027s'`},
		{"back\\slash", `'back\\slash'`},
		{"multi\nline", "'multi line'"},
		{"</script>", `'<\/script>'`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, jsString(tt.in), "input %q", tt.in)
	}
}

func TestJSStringCannotBreakOut(t *testing.T) {
	hostile := `'; alert(1); '`
	got := jsString(hostile)

	inner := strings.TrimSuffix(strings.TrimPrefix(got, "'"), "'")
	assert.NotContains(t, inner, "'")
}

func TestWritePlayerCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "player.html")
	entries := []playlist.Entry{{VideoID: "aaaaaaaaaaa"}}

	require.NoError(t, WritePlayer(entries, PlayerConfig{ClipSeconds: 60}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "aaaaaaaaaaa")
}
