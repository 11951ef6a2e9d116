package textpatch

import "strings"

// Decision is the outcome of locating a candidate entry in an ordered list.
// When AlreadyPresent is true InsertAt is meaningless and the caller must
// not write anything.
type Decision struct {
	AlreadyPresent bool
	InsertAt       int
}

// ListRegion locates a sorted, duplicate-free run of entry lines embedded in
// a larger file. Member reports whether a whitespace-trimmed line is a list
// entry; the region is the first contiguous run of member lines.
//
// Sortedness of the pre-existing region is a precondition, not something
// Decide verifies or repairs: on unsorted input the first crossover wins.
type ListRegion struct {
	Member func(trimmed string) bool
}

// Decide scans lines for entry and returns where it belongs. Comparison is
// byte-wise (not locale-aware, not case-insensitive). Entries are placed
// immediately before the first existing entry sorting after them; a
// candidate sorting after every entry lands at the end of the region. When
// no region exists at all the candidate lands at the end of the file, which
// for an empty file is line zero.
func (r ListRegion) Decide(lines []string, entry string) Decision {
	// Presence first: a duplicate anywhere aborts before any position is chosen.
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return Decision{AlreadyPresent: true}
		}
	}

	insert := -1
	inRegion := false
	end := len(lines)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !r.Member(trimmed) {
			if inRegion {
				end = i
				break
			}
			continue
		}
		inRegion = true
		if insert < 0 && trimmed > entry {
			insert = i
		}
		end = i + 1
	}
	if insert < 0 {
		insert = end
	}
	return Decision{InsertAt: insert}
}
