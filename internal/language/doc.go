// Package language normalizes the language identifiers users hand to the
// --languages flag into the short codes YouTube caption tracks carry.
// Accepts ISO 639-1 codes, common ISO 639-2 codes, and full word forms
// ("english").
package language
