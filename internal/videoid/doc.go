// Package videoid extracts YouTube video and playlist identifiers from the
// URL shapes users paste: watch pages, embeds, short links, and playlist
// pages.
package videoid
