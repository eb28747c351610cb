package disc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"audiobind/internal/logging"
)

// WaitForMedia blocks until device holds a disc. It returns at once when the
// drive already reports one, and otherwise listens for udev media events
// until one names device or ctx ends.
func WaitForMedia(ctx context.Context, device string, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "media-wait")
	if status, err := CheckDriveStatus(device); err == nil && status == DriveStatusDiscOK {
		return nil
	} else if err == nil {
		logger.Info("waiting for disc", logging.String("device", device), logging.String("status", status.String()))
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return fmt.Errorf("connect udev netlink: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(queue, errs, mediaMatcher())
	defer close(quit)

	want := resolveDevice(device)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-queue:
			name := EventDevice(event)
			if name == "" || resolveDevice(name) != want {
				logger.Debug("ignoring media event", logging.String("device", name))
				continue
			}
			logger.Info("disc detected",
				logging.String("device", name),
				logging.String("action", string(event.Action)),
				logging.String(logging.FieldEventType, "disc_detected"),
			)
			return nil
		case err := <-errs:
			logging.WarnWithContext(logger, "udev monitor error", "udev_monitor_error",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
				logging.String(logging.FieldImpact, "disc insertion may go unnoticed"),
			)
		}
	}
}

// mediaMatcher matches SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1 on
// change or add.
func mediaMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

// EventDevice returns the /dev path a uevent refers to.
func EventDevice(event netlink.UEvent) string {
	if name := event.Env["DEVNAME"]; name != "" {
		if !strings.HasPrefix(name, "/") {
			name = "/dev/" + name
		}
		return name
	}
	devpath := strings.TrimSuffix(event.Env["DEVPATH"], "/")
	if devpath == "" {
		return ""
	}
	return "/dev/" + filepath.Base(devpath)
}

func resolveDevice(device string) string {
	if resolved, err := filepath.EvalSymlinks(device); err == nil {
		return resolved
	}
	return filepath.Clean(device)
}
