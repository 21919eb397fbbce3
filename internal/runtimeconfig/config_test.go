package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Fetch != FetchLazy {
		t.Fatalf("expected lazy fetch default, got %q", cfg.Fetch)
	}
	if cfg.LocaleColumnLength != 5 {
		t.Fatalf("expected locale column length 5, got %d", cfg.LocaleColumnLength)
	}
}

func TestValidateRejectsUnknownFetchMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fetch = FetchMode("streaming")
	if err := cfg.Validate(); !errors.Is(err, ErrFetchModeInvalid) {
		t.Fatalf("expected ErrFetchModeInvalid, got %v", err)
	}
}

func TestValidateRejectsLocaleLengthOutOfRange(t *testing.T) {
	for _, length := range []int{0, 1, 6, 40} {
		cfg := DefaultConfig()
		cfg.LocaleColumnLength = length
		if err := cfg.Validate(); !errors.Is(err, ErrLocaleLengthInvalid) {
			t.Fatalf("length %d: expected ErrLocaleLengthInvalid, got %v", length, err)
		}
	}
}

func TestValidateRejectsOversizedDefaultLocale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLocale = "en_US_POSIX"
	if err := cfg.Validate(); !errors.Is(err, ErrDefaultLocaleTooLong) {
		t.Fatalf("expected ErrDefaultLocaleTooLong, got %v", err)
	}
}

func TestValidateLoggingSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
