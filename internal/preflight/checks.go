package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sys/unix"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "path not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDevice verifies that the optical drive node exists and can be read.
func CheckDevice(name, device string) Result {
	if strings.TrimSpace(device) == "" {
		return Result{Name: name, Detail: "device not configured"}
	}
	if _, err := os.Stat(device); err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", device)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", device, err)}
	}
	if err := unix.Access(device, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", device, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", device)}
}

// CheckMusicBrainz verifies the web service answers. Any non-5xx response
// counts as reachable; a single attempt with a 5-second timeout.
func CheckMusicBrainz(ctx context.Context, baseURL, userAgent string) Result {
	const name = "MusicBrainz"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := resty.New().
		SetBaseURL(base).
		SetHeader("User-Agent", userAgent).
		SetDisableWarn(true).
		R().
		SetContext(checkCtx).
		SetQueryParam("fmt", "json").
		Get("/discid/-")
	if err != nil {
		return Result{Name: name, Detail: summarizeNetError(err)}
	}
	if res.StatusCode() >= http.StatusInternalServerError {
		return Result{Name: name, Detail: fmt.Sprintf("service error (%d)", res.StatusCode())}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}
	return err.Error()
}
