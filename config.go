package dynjson

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/joeshaw/envdecode"
)

// Config holds parser and serializer defaults.
type Config struct {
	MaxObjectDepth int    `json:"max_object_depth" env:"DYNJSON_MAX_OBJECT_DEPTH,default=10"`
	MaxParseDepth  int    `json:"max_parse_depth" env:"DYNJSON_MAX_PARSE_DEPTH,default=512"`
	PrettyPrint    bool   `json:"pretty_print" env:"DYNJSON_PRETTY,default=false"`
	Indent         string `json:"indent" env:"DYNJSON_INDENT"`
	CastNilToNull  bool   `json:"cast_nil_to_null" env:"DYNJSON_CAST_NIL_TO_NULL,default=false"`
	EscapeHTML     bool   `json:"escape_html" env:"DYNJSON_ESCAPE_HTML,default=false"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxObjectDepth: DefaultMaxObjectDepth,
		MaxParseDepth:  DefaultMaxParseDepth,
		PrettyPrint:    false,
		Indent:         DefaultIndent,
		CastNilToNull:  false,
		EscapeHTML:     false,
	}
}

// ConfigFromEnv loads a Config from the DYNJSON_* environment variables.
// Unset variables keep their defaults and the result is validated.
func ConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("dynjson: load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate clamps out-of-range limits and fills empty fields with defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("dynjson: config cannot be nil")
	}

	clampInt := func(value *int, def, max int) {
		if *value <= 0 {
			*value = def
		} else if *value > max {
			*value = max
		}
	}

	clampInt(&c.MaxObjectDepth, DefaultMaxObjectDepth, MaxAllowedObjectDepth)
	clampInt(&c.MaxParseDepth, DefaultMaxParseDepth, MaxAllowedParseDepth)
	if c.Indent == "" {
		c.Indent = DefaultIndent
	}
	return nil
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	clone := *c
	return &clone
}

// WriteOptions returns the serializer options matching c.
func (c *Config) WriteOptions() WriteOption {
	return func(o *WriteOptions) {
		o.PrettyPrint = c.PrettyPrint
		o.Indent = c.Indent
		o.CastNilToNull = c.CastNilToNull
		o.MaxObjectDepth = c.MaxObjectDepth
		o.EscapeHTML = c.EscapeHTML
	}
}

// TextEncoding selects the character repertoire of serialized output.
type TextEncoding uint8

const (
	// UTF8 writes non-ASCII characters as raw UTF-8.
	UTF8 TextEncoding = iota
	// ASCII escapes every non-ASCII character as \uXXXX.
	ASCII
)

func (e TextEncoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case ASCII:
		return "ascii"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// WriteOptions controls RawString and RawData.
type WriteOptions struct {
	PrettyPrint bool
	Indent      string
	// CastNilToNull selects the lenient writer, which renders Unknown and
	// erroneous values as null instead of failing.
	CastNilToNull  bool
	MaxObjectDepth int
	Encoding       TextEncoding
	EscapeHTML     bool
}

// WriteOption configures a serialization call.
type WriteOption func(*WriteOptions)

func defaultWriteOptions() WriteOptions {
	return WriteOptions{
		Indent:         DefaultIndent,
		MaxObjectDepth: DefaultMaxObjectDepth,
		Encoding:       UTF8,
	}
}

// WithPrettyPrint toggles indented output.
func WithPrettyPrint(pretty bool) WriteOption {
	return func(o *WriteOptions) { o.PrettyPrint = pretty }
}

// WithIndent sets the indentation unit used by pretty output.
func WithIndent(indent string) WriteOption {
	return func(o *WriteOptions) { o.Indent = indent }
}

// WithCastNilToNull toggles the lenient, depth-limited writer.
func WithCastNilToNull(cast bool) WriteOption {
	return func(o *WriteOptions) { o.CastNilToNull = cast }
}

// WithMaxObjectDepth sets the nesting limit of the lenient writer.
func WithMaxObjectDepth(depth int) WriteOption {
	return func(o *WriteOptions) { o.MaxObjectDepth = depth }
}

// WithEncoding sets the output character repertoire.
func WithEncoding(enc TextEncoding) WriteOption {
	return func(o *WriteOptions) { o.Encoding = enc }
}

// WithEscapeHTML toggles escaping of <, > and & inside strings.
func WithEscapeHTML(escape bool) WriteOption {
	return func(o *WriteOptions) { o.EscapeHTML = escape }
}

// WithWriteOptions replaces all options at once.
func WithWriteOptions(opts WriteOptions) WriteOption {
	return func(o *WriteOptions) { *o = opts }
}

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.Default().With("component", "dynjson"))
}

// SetLogger replaces the logger used for serializer warnings. A nil logger
// restores the default.
func SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default().With("component", "dynjson")
	}
	defaultLogger.Store(logger)
}

func logger() *slog.Logger {
	return defaultLogger.Load()
}
