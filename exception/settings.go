package exception

import (
	"fmt"
)

// Default values for Settings.
const (
	DefaultReporter           = "noop"
	DefaultNestedKeySeparator = "__"
)

// Settings is the exceptions block of the service configuration. Keys are
// matched case-insensitively, so EXCEPTION_REPORTING and exception_reporting
// are the same setting.
type Settings struct {
	// ExceptionReporting names the reporter every handled error is sent to.
	ExceptionReporting string `yaml:"exception_reporting" mapstructure:"exception_reporting"`
	// EnableInDebug keeps generic 500 rendering for unrecognized errors in debug mode.
	EnableInDebug bool `yaml:"enable_in_debug" mapstructure:"enable_in_debug"`
	// FarsiException adds localized fa_details and fa_attr to records.
	FarsiException bool `yaml:"farsi_exception" mapstructure:"farsi_exception"`
	// NestedKeySeparator joins nested field paths into attr.
	NestedKeySeparator string `yaml:"nested_key_separator" mapstructure:"nested_key_separator"`
	// SupportMultipleExceptions reports every field error in a list instead
	// of only the first one.
	SupportMultipleExceptions bool `yaml:"support_multiple_exceptions" mapstructure:"support_multiple_exceptions"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ExceptionReporting: DefaultReporter,
		FarsiException:     true,
		NestedKeySeparator: DefaultNestedKeySeparator,
	}
}

// Defaults returns DefaultSettings as configuration keys under prefix, for
// seeding a config loader.
func Defaults(prefix string) map[string]any {
	d := DefaultSettings()
	if prefix != "" {
		prefix += "."
	}
	return map[string]any{
		prefix + "exception_reporting":         d.ExceptionReporting,
		prefix + "enable_in_debug":             d.EnableInDebug,
		prefix + "farsi_exception":             d.FarsiException,
		prefix + "nested_key_separator":        d.NestedKeySeparator,
		prefix + "support_multiple_exceptions": d.SupportMultipleExceptions,
	}
}

// ApplyDefaults fills empty string settings. Booleans are left untouched.
func (s *Settings) ApplyDefaults() {
	if s.ExceptionReporting == "" {
		s.ExceptionReporting = DefaultReporter
	}
	if s.NestedKeySeparator == "" {
		s.NestedKeySeparator = DefaultNestedKeySeparator
	}
}

// Validate checks the settings.
func (s *Settings) Validate() error {
	if s.NestedKeySeparator == "" {
		return fmt.Errorf("exceptions.nested_key_separator must not be empty")
	}
	return nil
}
