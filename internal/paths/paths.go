// Package paths resolves configuration and data directory locations and
// derives the fixed artifact layout under the clang-tidy source root.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/checkgen/pkg/types"
)

// CWD-relative default for the history database directory.
const DefaultDataDirName = ".checkgen-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir  = "CHECKGEN_CONFIG_DIR"
	EnvDataDir    = "CHECKGEN_DATA_DIR"
	EnvSourceRoot = "CHECKGEN_SOURCE_ROOT"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/checkgen (fallback ~/.config/checkgen)
// macOS:   ~/Library/Application Support/checkgen
// Windows: %APPDATA%/checkgen
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "checkgen"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "checkgen"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "checkgen"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > CHECKGEN_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveSourceRoot returns the clang-tidy source root following the
// precedence chain: flag > config.yaml source_root > CHECKGEN_SOURCE_ROOT
// env > current working directory.
func ResolveSourceRoot(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvSourceRoot); env != "" {
		return filepath.Abs(env)
	}
	return os.Getwd()
}

// ResolveDataDir returns the history data directory following the precedence
// chain: flag > config.yaml data_dir > CHECKGEN_DATA_DIR env > default
// $(CWD)/.checkgen-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// Layout derives every artifact path touched by one scaffold run. All paths
// hang off the per-module directory under SourceRoot; nothing is
// configurable below the root.
type Layout struct {
	SourceRoot string
}

// ModuleDir is the per-module directory holding the manifest, the module
// registration source, and the generated check files.
func (l Layout) ModuleDir(id types.CheckID) string {
	return filepath.Join(l.SourceRoot, id.Module)
}

// Manifest is the module's build manifest.
func (l Layout) Manifest(id types.CheckID) string {
	return filepath.Join(l.ModuleDir(id), "CMakeLists.txt")
}

// ModuleFile is the registration source, e.g. misc -> MiscTidyModule.cpp.
func (l Layout) ModuleFile(id types.CheckID) string {
	return filepath.Join(l.ModuleDir(id), capitalizeFirst(id.Module)+"TidyModule.cpp")
}

// Header is the generated header path.
func (l Layout) Header(id types.CheckID) string {
	return filepath.Join(l.ModuleDir(id), id.HeaderFile())
}

// Source is the generated implementation path.
func (l Layout) Source(id types.CheckID) string {
	return filepath.Join(l.ModuleDir(id), id.SourceFile())
}

// TestFixture is the test script path in the sibling test tree:
// <module dir>/../../test/clang-tidy/<module>-<check>.cpp.
func (l Layout) TestFixture(id types.CheckID) string {
	return filepath.Join(l.ModuleDir(id), "..", "..", "test", "clang-tidy", id.DashedName()+".cpp")
}

// TestFixtureDir is the directory containing the test fixtures.
func (l Layout) TestFixtureDir(id types.CheckID) string {
	return filepath.Dir(l.TestFixture(id))
}

// capitalizeFirst uppercases the first rune and lowercases the rest
// ("cppcoreguidelines" -> "Cppcoreguidelines").
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
