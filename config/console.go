package config

import "fmt"

// ConsoleConfig drives the interactive session.
type ConsoleConfig struct {
	// Locale selects the message catalog: "en" or "ru".
	Locale string `json:"locale"`
	// Debug prints the predicted value before each verdict.
	Debug bool `json:"debug"`
}

// SetDefaults applies sane defaults.
func (c *ConsoleConfig) SetDefaults() {
	if c.Locale == "" {
		c.Locale = "en"
	}
}

// Validate checks the locale.
func (c ConsoleConfig) Validate() error {
	switch c.Locale {
	case "en", "ru":
		return nil
	default:
		return fmt.Errorf("unknown console locale %s", c.Locale)
	}
}
