package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if !validBitrate(c.Encoding.Bitrate) {
		return fmt.Errorf("encoding.bitrate %q must be a number with an optional k/m suffix (e.g. 64k)", c.Encoding.Bitrate)
	}
	if c.Encoding.IntermediateExt == c.Encoding.OutputExt {
		return errors.New("encoding.intermediate_ext must differ from encoding.output_ext")
	}
	return nil
}

func validBitrate(value string) bool {
	value = strings.TrimSuffix(strings.TrimSuffix(value, "k"), "m")
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c *Config) validateMusicBrainz() error {
	if !c.MusicBrainz.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.MusicBrainz.BaseURL, "http://") && !strings.HasPrefix(c.MusicBrainz.BaseURL, "https://") {
		return fmt.Errorf("musicbrainz.base_url %q must be an http(s) URL", c.MusicBrainz.BaseURL)
	}
	if strings.TrimSpace(c.MusicBrainz.UserAgent) == "" {
		return errors.New("musicbrainz.user_agent must be set when musicbrainz.enabled is true")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic != "" && !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return fmt.Errorf("notifications.ntfy_topic %q must be a full http(s) topic URL", topic)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
