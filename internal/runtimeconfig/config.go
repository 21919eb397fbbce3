package runtimeconfig

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrFetchModeInvalid indicates an unsupported association fetch strategy.
var ErrFetchModeInvalid = errors.New("translatable config: fetch mode is invalid")

// ErrLocaleLengthInvalid indicates a locale column length outside the supported range.
var ErrLocaleLengthInvalid = errors.New("translatable config: locale column length must be between 2 and 5")

// ErrDefaultLocaleTooLong indicates a default locale that does not fit the locale column.
var ErrDefaultLocaleTooLong = errors.New("translatable config: default locale exceeds the locale column length")

var ErrLoggingLevelInvalid = errors.New("translatable config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("translatable config: logging format is invalid")

// FetchMode selects how the persistence layer loads derived associations. The
// deriver records the configured value verbatim; it never picks a strategy on
// its own.
type FetchMode string

const (
	FetchLazy      FetchMode = "lazy"
	FetchEager     FetchMode = "eager"
	FetchExtraLazy FetchMode = "extra-lazy"
)

// Config aggregates the externally supplied knobs for mapping derivation and
// runtime resolution. Fields intentionally use simple types so host
// applications can extend them later.
type Config struct {
	// DefaultLocale seeds the fallback locale on holders that have not been
	// through a lifecycle notification yet.
	DefaultLocale string

	// Fetch is the association fetch strategy stamped on every derived
	// association.
	Fetch FetchMode

	// LocaleColumnLength bounds the derived locale column. Locale codes are
	// short (e.g. "en", "pt_BR" truncated conventions aside); anything beyond
	// five characters indicates a misconfigured provider.
	LocaleColumnLength int

	Logging LoggingConfig
}

// LoggingConfig mirrors the go-logger adapter options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the configuration used when the host supplies nothing.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:      "en",
		Fetch:              FetchLazy,
		LocaleColumnLength: 5,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate reports the first configuration inconsistency it finds.
func (c Config) Validate() error {
	if err := validation.Validate(string(c.Fetch),
		validation.Required,
		validation.In(string(FetchLazy), string(FetchEager), string(FetchExtraLazy)),
	); err != nil {
		return ErrFetchModeInvalid
	}

	if c.LocaleColumnLength < 2 || c.LocaleColumnLength > 5 {
		return ErrLocaleLengthInvalid
	}

	if locale := strings.TrimSpace(c.DefaultLocale); len(locale) > c.LocaleColumnLength {
		return ErrDefaultLocaleTooLong
	}

	if err := c.Logging.validate(); err != nil {
		return err
	}

	return nil
}

func (l LoggingConfig) validate() error {
	if err := validation.Validate(strings.ToLower(strings.TrimSpace(l.Level)),
		validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal"),
	); err != nil {
		return ErrLoggingLevelInvalid
	}
	if err := validation.Validate(strings.ToLower(strings.TrimSpace(l.Format)),
		validation.In("", "json", "console", "pretty"),
	); err != nil {
		return ErrLoggingFormatInvalid
	}
	return nil
}
