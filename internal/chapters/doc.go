// Package chapters computes chapter boundaries from per-file durations and
// renders them as an FFMETADATA1 document for ffmpeg's -map_chapters.
//
// Build is a pure fold: each chapter starts where the previous one ended, the
// first starts at zero, and offsets are rounded to the nearest millisecond.
package chapters
