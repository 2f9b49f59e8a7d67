// Package playlist resolves the video IDs contained in a YouTube
// playlist. With an API key it pages through the Data API; without one
// it falls back to scraping the playlist page.
package playlist
