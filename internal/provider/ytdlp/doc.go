// Package ytdlp shells out to the yt-dlp binary to download subtitle
// files when the timed-text endpoint cannot serve a video. It is the
// fallback caption source and trades speed for robustness.
package ytdlp
