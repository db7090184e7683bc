package config

// InputConfig selects the traffic log and how it is ingested.
type InputConfig struct {
	// Path is the log read when no file is given on the command line.
	Path string `json:"path"`
	// Strict aborts ingestion on the first malformed line.
	Strict bool `json:"strict"`
	// Progress shows a progress bar on stderr while ingesting.
	Progress bool `json:"progress"`
}

// SetDefaults applies sane defaults.
func (c *InputConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "traffic.txt"
	}
}
