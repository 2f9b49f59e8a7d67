// Package provider defines the caption-source abstraction the acquisition
// pipeline is written against, plus the transient/permanent error taxonomy
// every backend maps its failures into.
package provider
