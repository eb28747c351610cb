// Package ffprobe wraps the ffprobe executable.
//
// Prober.ProbeDuration runs the minimal duration query the pipeline needs and
// returns *ProbeError when ffprobe cannot run or prints something that is not a
// finite, non-negative number. Inspect runs the full JSON probe and decodes it
// into Result, whose helpers back the probe command.
package ffprobe
