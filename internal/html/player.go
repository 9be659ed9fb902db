// Package html renders the self-contained power-hour artifacts. The
// generated pages work offline except for loading the YouTube IFrame API
// script; all playlist data is embedded as literal JS arrays.
package html

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/keagan/powerhour/internal/playlist"
	"github.com/keagan/powerhour/pkg/util"
)

// PlayerConfig holds the per-run constants embedded in the player page.
type PlayerConfig struct {
	ClipSeconds      float64
	TitleRevealDelay float64
}

// RenderPlayer produces the sequencing player page for the resolved
// playlist entries.
func RenderPlayer(entries []playlist.Entry, cfg PlayerConfig) (string, error) {
	ids := make([]string, len(entries))
	titles := make([]string, len(entries))
	starts := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = jsString(e.VideoID)
		titles[i] = jsString(e.Title)
		starts[i] = util.FormatSeconds(max(0, e.Start))
	}

	data := map[string]string{
		"IDs":              strings.Join(ids, ","),
		"Titles":           strings.Join(titles, ","),
		"Starts":           strings.Join(starts, ","),
		"ClipSeconds":      util.FormatSeconds(cfg.ClipSeconds),
		"TitleRevealDelay": util.FormatSeconds(cfg.TitleRevealDelay),
	}

	var sb strings.Builder
	if err := playerTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render player: %w", err)
	}
	return sb.String(), nil
}

// WritePlayer renders the player page to disk, creating parent dirs.
func WritePlayer(entries []playlist.Entry, cfg PlayerConfig, path string) error {
	html, err := RenderPlayer(entries, cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, []byte(html), 0644)
}

// jsString renders a single-quoted JS string literal. Single quotes
// become \u0027 so embedded titles cannot break out of the literal.
func jsString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\u0027")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "</", "<\\/")
	return "'" + s + "'"
}

var playerTmpl = template.Must(template.New("player").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Power Hour (YouTube)</title>
    <style>
        body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; margin: 0; padding: 0; background: #111; color: #eee; }
        header { padding: 12px 16px; background: #181818; position: sticky; top: 0; z-index: 2; }
        .player-wrap { position: relative; width: 100%; max-width: 1280px; margin: 12px auto; }
        .player-wrap::before { content: ''; display: block; width: 100%; padding-top: calc(100% * 9 / 16); }
        #player { position: absolute; inset: 0; width: 100%; height: 100%; }
        .title-blocker { position: absolute; bottom: 0; left: 0; right: 0; height: 60px; background: linear-gradient(to top, rgba(17,17,17,0.95) 0%, rgba(17,17,17,0.8) 50%, transparent 100%); pointer-events: none; z-index: 1; }
        .overlay { position: absolute; left: 8px; top: 8px; background: rgba(0,0,0,0.6); color: #fff; padding: 6px 10px; border-radius: 6px; font-weight: 600; pointer-events: none; max-width: 95%; z-index: 2; }
        .overlay .title { display: block; font-weight: 500; opacity: 0.9; font-size: 14px; margin-top: 2px; }
        .overlay .title.hidden { display: none; }
        .wrap { max-width: 1280px; margin: 0 auto; padding: 8px 16px; }
        .btn { background: #2d6cdf; color: white; border: 0; padding: 8px 12px; border-radius: 6px; margin-right: 8px; cursor: pointer; }
        .btn:disabled { opacity: 0.6; cursor: default; }
        .meta { opacity: 0.8; font-size: 14px; }
    </style>
</head>
<body>
    <header>
        <div class="wrap">
            <button id="playBtn" class="btn">Play</button>
            <button id="pauseBtn" class="btn">Pause</button>
            <button id="prevBtn" class="btn">Prev</button>
            <button id="nextBtn" class="btn">Next</button>
            <span class="meta" id="status"></span>
        </div>
    </header>
    <div class="wrap">
        <div class="player-wrap">
            <div id="player"></div>
            <div class="title-blocker"></div>
            <div class="overlay" id="overlay"></div>
        </div>
    </div>

    <script>
        const VIDEO_IDS = [{{.IDs}}];
        const VIDEO_TITLES = [{{.Titles}}];
        const CLIP_SECONDS = {{.ClipSeconds}};
        const VIDEO_STARTS = [{{.Starts}}];
        const TITLE_REVEAL_DELAY = {{.TitleRevealDelay}};
        let currentIndex = 0;
        let player = null;
        let checkInterval = null;

        function updateStatus(showTitle = false) {
            const s = document.getElementById('status');
            const total = VIDEO_IDS.length;
            const cur = currentIndex + 1;
            const t = (VIDEO_TITLES[currentIndex] || '').trim();
            s.textContent = 'Clip ' + cur + ' / ' + total + ' (each ' + Math.round(CLIP_SECONDS) + 's)' + (showTitle && t ? ' — ' + t : '');
            const ov = document.getElementById('overlay');
            ov.innerHTML = '<div># ' + cur + ' / ' + total + '</div>' + (t ? '<span class="title' + (showTitle ? '' : ' hidden') + '">' + t + '</span>' : '');
        }

        function onYouTubeIframeAPIReady() {
            player = new YT.Player('player', {
                videoId: VIDEO_IDS[currentIndex],
                playerVars: { rel: 0, modestbranding: 1, controls: 1, fs: 1 },
                events: {
                    'onReady': onPlayerReady
                }
            });
        }

        function checkPlaybackTime() {
            if (!player || !player.getCurrentTime) return;
            try {
                const currentTime = player.getCurrentTime();
                const startTime = Number(VIDEO_STARTS[currentIndex] || 0);
                const elapsed = currentTime - startTime;

                // Advance once the clip has played its share
                if (elapsed >= CLIP_SECONDS) {
                    nextClip();
                }

                // Reveal the title after the configured delay
                if (TITLE_REVEAL_DELAY > 0 && elapsed >= TITLE_REVEAL_DELAY && elapsed < TITLE_REVEAL_DELAY + 0.5) {
                    updateStatus(true);
                }
            } catch(e) {
                console.warn('Error checking playback time:', e);
            }
        }

        function playCurrent() {
            if (!player) return;
            try { player.stopVideo(); } catch(e) {}
            const start = Number(VIDEO_STARTS[currentIndex] || 0);
            player.loadVideoById({videoId: VIDEO_IDS[currentIndex], startSeconds: start});
            player.playVideo();
            clearTimers();
            updateStatus(TITLE_REVEAL_DELAY <= 0);
            checkInterval = setInterval(checkPlaybackTime, 500);
        }

        function clearTimers() {
            if (checkInterval) { clearInterval(checkInterval); checkInterval = null; }
        }

        function nextClip() {
            clearTimers();
            currentIndex = (currentIndex + 1) % VIDEO_IDS.length;
            playCurrent();
        }

        function prevClip() {
            clearTimers();
            currentIndex = (currentIndex - 1 + VIDEO_IDS.length) % VIDEO_IDS.length;
            playCurrent();
        }

        function onPlayerReady() {
            updateStatus(TITLE_REVEAL_DELAY <= 0);
        }

        document.getElementById('playBtn').addEventListener('click', playCurrent);
        document.getElementById('pauseBtn').addEventListener('click', () => {
            clearTimers();
            if (player) player.pauseVideo();
        });
        document.getElementById('nextBtn').addEventListener('click', nextClip);
        document.getElementById('prevBtn').addEventListener('click', prevClip);

        // Load the IFrame Player API
        const tag = document.createElement('script');
        tag.src = "https://www.youtube.com/iframe_api";
        document.body.appendChild(tag);
    </script>
</body>
</html>
`))
