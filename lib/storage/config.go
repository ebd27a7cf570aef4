package storage

import (
	"net/url"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	SchemeMemory = "memory"
	SchemeFile   = "file"
)

// Config is parsed from a storage uri, like `memory://` or
// `file:///var/lib/votebook/db`.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(value string) (*Config, error) {
	parsed, err := url.Parse(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid storage uri %q", value)
	}

	config := &Config{Scheme: parsed.Scheme}
	switch parsed.Scheme {
	case SchemeMemory:
	case SchemeFile:
		path := parsed.Path
		if len(parsed.Host) > 0 {
			path = filepath.Join(parsed.Host, path)
		}
		if len(path) < 1 {
			return nil, errors.Errorf("empty path in storage uri %q", value)
		}
		config.Path = path
	default:
		return nil, errors.Errorf("unsupported storage scheme %q", parsed.Scheme)
	}

	return config, nil
}

func (c Config) String() string {
	if c.Scheme == SchemeMemory {
		return "memory://"
	}

	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
