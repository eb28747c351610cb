package deps

import (
	"bytes"
	"context"
	"io"
	"strings"

	"audiobind/internal/runner"
)

// Version runs `<binary> <flag>` and returns the first non-empty output line,
// e.g. "ffmpeg version 7.0.1 Copyright ...". Errors yield "".
func Version(ctx context.Context, out runner.Output, binary, flag string) string {
	if out == nil || strings.TrimSpace(binary) == "" {
		return ""
	}
	data, err := out.Output(ctx, runner.Command{Binary: binary, Args: []string{flag}}, io.Discard)
	if err != nil {
		return ""
	}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if trimmed := strings.TrimSpace(string(line)); trimmed != "" {
			if idx := strings.Index(trimmed, " Copyright"); idx > 0 {
				trimmed = trimmed[:idx]
			}
			return trimmed
		}
	}
	return ""
}

// AttachVersions fills Status.Version for every available status whose
// command has an entry in flags.
func AttachVersions(ctx context.Context, out runner.Output, statuses []Status, flags map[string]string) {
	for i := range statuses {
		flag, ok := flags[statuses[i].Command]
		if !ok || !statuses[i].Available {
			continue
		}
		statuses[i].Version = Version(ctx, out, statuses[i].Path, flag)
	}
}
