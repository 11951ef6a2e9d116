package types

import "errors"

// Config holds the resolved settings for one checkgen invocation.
type Config struct {
	// SourceRoot is the clang-tidy source tree root containing one
	// directory per module. Artifact paths are derived from it.
	SourceRoot string `json:"source_root" yaml:"source_root"`

	// DataDir is where the scaffold history database lives.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// History enables recording scaffold runs to the history database.
	History bool `json:"history" yaml:"history"`
}

// Config validation errors.
var (
	ErrSourceRootEmpty = errors.New("source root must not be empty")
)

// Validate checks that the Config is well-formed. DataDir may be empty when
// History is disabled.
func (c Config) Validate() error {
	if c.SourceRoot == "" {
		return ErrSourceRootEmpty
	}
	return nil
}
