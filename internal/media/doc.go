// Package media holds the source file model shared by discovery, transcoding,
// and the pipeline: Input pairs a path with its Format tag, which is derived
// from the lower-cased extension.
package media
