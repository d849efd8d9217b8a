// Package metadata looks up the handful of video fields a card needs:
// title, duration, source thumbnail URL, view count and channel name.
//
// Providers are interchangeable. YTDLP shells out to yt-dlp through
// goutubedl and needs no credentials; DataAPI calls the YouTube Data API v3
// with an API key. Cached wraps either one with a persistent store.
//
// Every provider returns fields already normalized by Normalize, so callers
// never see empty values: missing fields become "Unsupported Title", "Live",
// "Unknown Views" or "Unknown Channel".
package metadata
