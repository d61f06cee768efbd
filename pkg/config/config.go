// Package config defines the configuration types for mdtree.
// These types are pure data structures; discovery, merging and validation
// live in internal/configloader.
package config

// Defaults for the backend and renderer names.
const (
	DefaultBackend  = "gfm"
	DefaultRenderer = "markdown"
)

// ColorMode controls coloured terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the colour mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// FormatConfig controls the fmt command.
type FormatConfig struct {
	// DetectLang fills in missing info strings on fenced code blocks.
	DetectLang bool `yaml:"detect_lang"`

	// Backup keeps a sidecar copy of each file before it is rewritten.
	Backup bool `yaml:"backup"`
}

// TextConfig controls the plain text renderer.
type TextConfig struct {
	IncludeCode      bool `yaml:"include_code"`
	IncludeAltText   bool `yaml:"include_alt_text"`
	StripPunctuation bool `yaml:"strip_punctuation"`
}

// Config is the root configuration structure for mdtree.
type Config struct {
	// Backend names the parser backend ("gfm", "commonmark", "json", "yaml").
	Backend string `yaml:"backend"`

	// Renderer names the output format ("markdown", "json", "yaml", "text").
	Renderer string `yaml:"renderer"`

	// Color controls coloured output.
	Color ColorMode `yaml:"color"`

	// Jobs is the number of parallel workers for fmt. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// Extensions lists the file extensions fmt picks up from directories.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Format configures the fmt command.
	Format FormatConfig `yaml:"format"`

	// Text configures the text renderer.
	Text TextConfig `yaml:"text"`
}

// NewConfig returns a Config with the defaults.
func NewConfig() *Config {
	return &Config{
		Backend:    DefaultBackend,
		Renderer:   DefaultRenderer,
		Color:      ColorAuto,
		Jobs:       0,
		Extensions: []string{".md", ".markdown"},
	}
}
