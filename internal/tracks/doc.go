// Package tracks models the caption tracks a video advertises and picks
// one under an ordered language preference policy: exact language match
// first, then any English-family track, then whatever the catalog offers.
package tracks
