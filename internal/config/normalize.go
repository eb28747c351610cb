package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizeTools()
	c.normalizeRip()
	c.normalizeMusicBrainz()
	if err := c.normalizeDiscIDCache(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// An empty work_dir means the system temporary directory.
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	c.Encoding.Codec = strings.TrimSpace(c.Encoding.Codec)
	if c.Encoding.Codec == "" {
		c.Encoding.Codec = defaultCodec
	}
	c.Encoding.Bitrate = strings.ToLower(strings.TrimSpace(c.Encoding.Bitrate))
	if c.Encoding.Bitrate == "" {
		c.Encoding.Bitrate = defaultBitrate
	}
	c.Encoding.IntermediateExt = normalizeExt(c.Encoding.IntermediateExt, defaultIntermediateExt)
	c.Encoding.OutputExt = normalizeExt(c.Encoding.OutputExt, defaultOutputExt)
}

func normalizeExt(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	if !strings.HasPrefix(value, ".") {
		value = "." + value
	}
	return value
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = defaultString(c.Tools.FFmpeg, defaultFFmpeg)
	c.Tools.FFprobe = defaultString(c.Tools.FFprobe, defaultFFprobe)
	c.Tools.CDDiscID = defaultString(c.Tools.CDDiscID, defaultCDDiscID)
	c.Tools.CDParanoia = defaultString(c.Tools.CDParanoia, defaultCDParanoia)
}

func (c *Config) normalizeRip() {
	c.Rip.Device = defaultString(c.Rip.Device, defaultRipDevice)
}

func (c *Config) normalizeMusicBrainz() {
	c.MusicBrainz.BaseURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.BaseURL), "/")
	if c.MusicBrainz.BaseURL == "" {
		c.MusicBrainz.BaseURL = defaultMusicBrainzBaseURL
	}
	if value, ok := os.LookupEnv("MUSICBRAINZ_USER_AGENT"); ok && strings.TrimSpace(value) != "" {
		c.MusicBrainz.UserAgent = value
	}
	c.MusicBrainz.UserAgent = defaultString(c.MusicBrainz.UserAgent, defaultMusicBrainzUserAgent)
	if c.MusicBrainz.TimeoutSeconds <= 0 {
		c.MusicBrainz.TimeoutSeconds = defaultMusicBrainzTimeout
	}
}

func (c *Config) normalizeDiscIDCache() error {
	var err error
	if strings.TrimSpace(c.DiscIDCache.Path) == "" {
		c.DiscIDCache.Path = filepath.Join(defaultCacheDir(), defaultDiscIDCacheFileName)
	}
	if c.DiscIDCache.Path, err = expandPath(c.DiscIDCache.Path); err != nil {
		return fmt.Errorf("disc_id_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNtfyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("AUDIOBIND_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func defaultString(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
