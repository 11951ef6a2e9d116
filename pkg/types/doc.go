// Package types defines the CheckID value type with its derived naming
// accessors, and the Config shared by the CLI and the scaffolder.
package types
