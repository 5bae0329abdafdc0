// Package patch maps game versions onto the competitive splits of a season.
//
// A season has three splits. The split of a patch is derived from its minor
// version ("14.9.1" → minor 9) through a fixed boundary table:
//
//	Split1: 0..9
//	Split2: 10..18
//	Split3: 19..24
//
// The table follows the yearly patch cadence and has to be edited if the
// cadence changes. Minor versions outside the table do not classify.
// Two patches share a split only when their seasons (major versions) match
// too, so 13.20 and 14.20 are different splits.
package patch

import (
	"strconv"
	"strings"
)

// Split is one of the three competitive periods of a season.
type Split int

const (
	Split1 Split = iota + 1
	Split2
	Split3
)

func (s Split) String() string {
	switch s {
	case Split1:
		return "Split 1"
	case Split2:
		return "Split 2"
	case Split3:
		return "Split 3"
	}
	return "unknown split"
}

type boundary struct {
	start, end uint64
	split      Split
}

var boundaries = [...]boundary{
	{0, 9, Split1},
	{10, 18, Split2},
	{19, 24, Split3},
}

// FromVersion classifies a dotted game version ("<major>.<minor>[.<patch>...]").
// It returns false when the minor version is missing, not an unsigned
// integer, or outside every split.
func FromVersion(version string) (Split, bool) {
	minor, ok := component(version, 1)
	if !ok {
		return 0, false
	}
	for _, b := range boundaries {
		if minor >= b.start && minor <= b.end {
			return b.split, true
		}
	}
	return 0, false
}

// Major returns the season component of a version.
func Major(version string) (uint64, bool) {
	return component(version, 0)
}

// SameSplit reports whether both versions classify into the same split of
// the same season.
func SameSplit(version, reference string) bool {
	split, ok := FromVersion(version)
	if !ok {
		return false
	}
	refSplit, ok := FromVersion(reference)
	if !ok || split != refSplit {
		return false
	}
	major, ok := Major(version)
	if !ok {
		return false
	}
	refMajor, ok := Major(reference)
	return ok && major == refMajor
}

func component(version string, idx int) (uint64, bool) {
	parts := strings.Split(version, ".")
	if idx >= len(parts) {
		return 0, false
	}
	v, err := strconv.ParseUint(parts[idx], 10, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}
