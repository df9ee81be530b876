package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".kaiwa"

// Paths holds resolved filesystem paths for kaiwa data.
type Paths struct {
	Base   string // ~/.kaiwa
	Config string // ~/.kaiwa/config.yaml
}

// ResolvePaths computes all standard paths from the home directory.
// If KAIWA_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("KAIWA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
	}, nil
}
