package knowledge

// Config holds knowledge base initialization parameters.
type Config struct {
	Path  string `json:"path,omitempty"`  // JSON entry file; empty uses the builtin table.
	Watch bool   `json:"watch,omitempty"` // Reload the file on change (development only).
}

// DefaultConfig returns the default knowledge configuration (builtin table).
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.Watch {
		c.Watch = true
	}
}

// New creates a Store from configuration.
func New(cfg *Config) (*Store, error) {
	if cfg.Path == "" {
		return NewStore(Builtin()), nil
	}

	entries, err := Load(cfg.Path)
	if err != nil {
		return nil, err
	}
	return NewStore(entries), nil
}
