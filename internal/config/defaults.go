package config

import "path/filepath"

const (
	defaultConfigPath            = "~/.config/audiobind/config.toml"
	defaultLogDir                = "~/.local/share/audiobind/logs"
	defaultHistoryPath           = "~/.local/share/audiobind/history.db"
	defaultLogRetentionDays      = 30
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultCodec                 = "aac"
	defaultBitrate               = "64k"
	defaultIntermediateExt       = ".m4a"
	defaultOutputExt             = ".m4b"
	defaultFFmpeg                = "ffmpeg"
	defaultFFprobe               = "ffprobe"
	defaultCDDiscID              = "cd-discid"
	defaultCDParanoia            = "cdparanoia"
	defaultRipDevice             = "/dev/cdrom"
	defaultMusicBrainzBaseURL    = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzUserAgent  = "audiobind/dev"
	defaultMusicBrainzTimeout    = 10
	defaultDiscIDCacheFileName   = "discid_cache.json"
	defaultMusicBrainzEnabled    = true
	defaultHistoryEnabled        = true
	defaultApplyDiscChapterNames = false
	defaultNtfyTimeout           = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Encoding: Encoding{
			Codec:           defaultCodec,
			Bitrate:         defaultBitrate,
			IntermediateExt: defaultIntermediateExt,
			OutputExt:       defaultOutputExt,
		},
		Tools: Tools{
			FFmpeg:     defaultFFmpeg,
			FFprobe:    defaultFFprobe,
			CDDiscID:   defaultCDDiscID,
			CDParanoia: defaultCDParanoia,
		},
		Rip: Rip{
			Device: defaultRipDevice,
		},
		Chapters: Chapters{
			ApplyDiscTitles: defaultApplyDiscChapterNames,
		},
		MusicBrainz: MusicBrainz{
			Enabled:        defaultMusicBrainzEnabled,
			BaseURL:        defaultMusicBrainzBaseURL,
			UserAgent:      defaultMusicBrainzUserAgent,
			TimeoutSeconds: defaultMusicBrainzTimeout,
		},
		DiscIDCache: DiscIDCache{
			Path: filepath.Join(defaultCacheDir(), defaultDiscIDCacheFileName),
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
