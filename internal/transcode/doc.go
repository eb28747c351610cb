// Package transcode normalizes heterogeneous source audio into intermediates
// that share one codec, bitrate, and container.
//
// Normalize validates every source format before it encodes anything, then
// runs the Encoder once per file, strictly in order, stopping at the first
// failure. Intermediates are named by ordinal so lexical order is input order.
package transcode
