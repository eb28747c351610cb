// Package main hosts the audiobind CLI entrypoint and command graph.
//
// The root command converts a folder (or, with --rip-cd, a freshly ripped
// audio CD) into one chaptered audiobook. Subcommands cover configuration
// scaffolding, preflight checks, the run history ledger and its pipeline
// logs, the disc ID cache, leftover working areas, and a quick ffprobe
// summary for a single file.
//
// Keep this package lean: conversion logic lives in internal/pipeline and its
// stages. Commands here resolve configuration, assemble a job, render
// progress, and map outcomes to exit codes.
package main
