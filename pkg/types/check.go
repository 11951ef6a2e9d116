package types

import (
	"errors"
	"strings"
	"unicode"
)

// GuardPrefix is the namespace prefix shared by every generated header guard.
const GuardPrefix = "LLVM_CLANG_TOOLS_EXTRA_CLANG_TIDY_"

// SymbolSuffix is appended to the camel-cased check name to form the class name.
const SymbolSuffix = "Check"

// CheckID validation errors.
var (
	ErrModuleEmpty = errors.New("module name must not be empty")
	ErrCheckEmpty  = errors.New("check name must not be empty")
)

// CheckID identifies one check within a module. Module and Name are
// dash-separated lowercase tokens as passed on the command line
// (e.g. "misc", "awesome-functions"). All derived accessors are pure
// functions of the two fields; downstream generators re-derive them freely.
type CheckID struct {
	Module string
	Name   string
}

// Validate checks that both components are present.
func (id CheckID) Validate() error {
	if id.Module == "" {
		return ErrModuleEmpty
	}
	if id.Name == "" {
		return ErrCheckEmpty
	}
	return nil
}

// SymbolName returns the generated class name: each dash-separated segment
// of the check name capitalized, concatenated, plus the "Check" suffix.
// "awesome-functions" -> "AwesomeFunctionsCheck".
func (id CheckID) SymbolName() string {
	var b strings.Builder
	for _, seg := range strings.Split(id.Name, "-") {
		b.WriteString(capitalize(seg))
	}
	b.WriteString(SymbolSuffix)
	return b.String()
}

// GuardToken returns the header guard symbol:
// GuardPrefix + MODULE + "_" + CHECK + "_H", uppercased with dashes
// mapped to underscores.
func (id CheckID) GuardToken() string {
	return GuardPrefix +
		strings.ToUpper(strings.ReplaceAll(id.Module, "-", "_")) + "_" +
		strings.ToUpper(strings.ReplaceAll(id.Name, "-", "_")) + "_H"
}

// DashedName returns the fully qualified dashed name used in registration
// calls and test fixtures: "misc-awesome-functions".
func (id CheckID) DashedName() string {
	return id.Module + "-" + id.Name
}

// HeaderFile returns the generated header filename.
func (id CheckID) HeaderFile() string {
	return id.SymbolName() + ".h"
}

// SourceFile returns the generated implementation filename. This is also the
// entry recorded in the module's build manifest.
func (id CheckID) SourceFile() string {
	return id.SymbolName() + ".cpp"
}

// capitalize uppercases the first rune and lowercases the rest, so mixed-case
// input still yields a canonical segment.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
