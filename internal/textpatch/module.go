package textpatch

import (
	"regexp"
	"strings"

	"github.com/mesh-intelligence/checkgen/pkg/types"
)

// Line patterns delimiting the two ordered lists in a module source file.
var (
	includeRe  = regexp.MustCompile(`#include "(.*)"`)
	registerRe = regexp.MustCompile(`registerCheck<(.*)>`)
)

// insertState tracks one list's progress through the single forward pass.
type insertState int

const (
	stateSearching insertState = iota // region not reached yet
	stateScanning                     // inside the region
	stateInserted
)

// PatchModule returns lines with the check's include directive and its
// two-line factory registration call inserted into their respective sorted
// lists. The file is visited once, in order, with an independent state
// machine per list:
//
//   - The include list is ordered by the included path; the new directive
//     goes before the first include comparing greater than the symbol name,
//     or on the first non-include line after the run ends.
//   - The registration list is ordered by the registered symbol; the new
//     call goes before the first registerCheck comparing greater, or, if no
//     crossover occurs, immediately before the closing "}" of the
//     registration function.
//
// Preconditions: both lists are sorted and the check is not already
// registered (the build-manifest check runs first and aborts the pipeline
// on duplicates). A file with no include lines at all gains no include
// directive; malformed input is not validated.
func PatchModule(lines []string, id types.CheckID) []string {
	symbol := id.SymbolName()
	includeLine := `#include "` + symbol + `.h"`
	declLines := [2]string{
		"    CheckFactories.registerCheck<" + symbol + ">(",
		`        "` + id.DashedName() + `");`,
	}

	out := make([]string, 0, len(lines)+3)
	inc := stateSearching
	reg := stateSearching
	for _, line := range lines {
		if inc != stateInserted {
			if m := includeRe.FindStringSubmatch(line); m != nil {
				inc = stateScanning
				if m[1] > symbol {
					out = append(out, includeLine)
					inc = stateInserted
				}
			} else if inc == stateScanning {
				out = append(out, includeLine)
				inc = stateInserted
			}
		}
		if reg != stateInserted {
			if strings.TrimSpace(line) == "}" {
				out = append(out, declLines[0], declLines[1])
				reg = stateInserted
			} else if m := registerRe.FindStringSubmatch(line); m != nil {
				reg = stateScanning
				if m[1] > symbol {
					out = append(out, declLines[0], declLines[1])
					reg = stateInserted
				}
			}
		}
		out = append(out, line)
	}
	return out
}
