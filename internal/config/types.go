package config

import "time"

// Clipboard backends.
const (
	ClipboardSystem = "system"
	ClipboardOSC52  = "osc52"
	ClipboardNone   = "none"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the top-level meshdocs configuration, corresponding to .meshdocs.yml.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Grid      GridConfig      `yaml:"grid" koanf:"grid"`
	Clipboard ClipboardConfig `yaml:"clipboard" koanf:"clipboard"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
	Export    ExportConfig    `yaml:"export" koanf:"export"`
}

// ServerConfig holds settings for the web hub.
type ServerConfig struct {
	Host            string `yaml:"host" koanf:"host"`
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Dev             bool   `yaml:"dev" koanf:"dev"`
	Metrics         bool   `yaml:"metrics" koanf:"metrics"`
	// MediaDir, when set, is served under /media for tile videos and logos.
	MediaDir string `yaml:"media_dir" koanf:"media_dir"`
}

// GridConfig holds the landing grid's animation parameters.
type GridConfig struct {
	HoverWeight    float64 `yaml:"hover_weight" koanf:"hover_weight"`
	Gap            int     `yaml:"gap" koanf:"gap"`
	TransitionMS   int     `yaml:"transition_ms" koanf:"transition_ms"`
	CleanInterface bool    `yaml:"clean_interface" koanf:"clean_interface"`
}

// Transition returns the track resize duration.
func (g GridConfig) Transition() time.Duration {
	return time.Duration(g.TransitionMS) * time.Millisecond
}

// ClipboardConfig selects how copied text leaves the process.
type ClipboardConfig struct {
	Backend    string `yaml:"backend" koanf:"backend"`
	FeedbackMS int    `yaml:"feedback_ms" koanf:"feedback_ms"`
}

// Feedback returns how long a "Copied!" acknowledgment stays visible.
func (c ClipboardConfig) Feedback() time.Duration {
	return time.Duration(c.FeedbackMS) * time.Millisecond
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
	// File, when set, receives logs instead of stderr and is rotated once it
	// reaches MaxSizeMB.
	File      string `yaml:"file" koanf:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" koanf:"max_size_mb"`
}

// ExportConfig holds settings for the static site export.
type ExportConfig struct {
	OutputDir      string `yaml:"output_dir" koanf:"output_dir"`
	HighlightStyle string `yaml:"highlight_style" koanf:"highlight_style"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "",
			Port:    8080,
			Metrics: true,
		},
		Grid: GridConfig{
			HoverWeight:    6,
			Gap:            4,
			TransitionMS:   400,
			CleanInterface: true,
		},
		Clipboard: ClipboardConfig{
			Backend:    ClipboardSystem,
			FeedbackMS: 2000,
		},
		Log: LogConfig{
			Level:     "info",
			Format:    LogFormatText,
			MaxSizeMB: 10,
		},
		Export: ExportConfig{
			OutputDir:      "site",
			HighlightStyle: "github",
		},
	}
}
