// Package pipeline runs one conversion job through its stages:
//
//	Idle -> Transcoding -> Probing -> BuildingMetadata -> Merging -> Done
//
// Any stage failure moves the run to Failed and is returned as *StageError;
// nothing downstream of the failure runs and there are no retries. Each run
// owns a private working area holding the intermediates, the chapter document,
// the concat manifest, and the pipeline log. The log is relocated to the log
// directory before the working area is removed, so Result.LogPath always
// points at a file that still exists. An advisory lock on "<output>.lock"
// keeps two runs from writing the same book.
package pipeline
