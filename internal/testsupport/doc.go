// Package testsupport holds helpers shared by package tests: a config
// builder rooted in a temp directory, stub ffmpeg/ffprobe scripts, and
// placeholder input files.
package testsupport
