// Package workarea finds and prunes per-run working areas that outlived
// their run, either kept with --keep-work-dir or left behind when the
// process was killed before teardown.
package workarea
