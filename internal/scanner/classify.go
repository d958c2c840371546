// Package scanner walks the parts area of a materialized library and
// yields indexable part candidates with their extracted metadata.
package scanner

import (
	"path"
	"strings"
)

// Kind classifies a file found during the tree walk.
type Kind int

const (
	// Excluded: documentation, primitives, and other non-part resources.
	Excluded Kind = iota
	// PlainPart: a part file directly under the parts area or a nested
	// category folder.
	PlainPart
	// PatternedVariant: a part file under a variant subdirectory,
	// representing a textured/printed form of a base part.
	PatternedVariant
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case PlainPart:
		return "part"
	case PatternedVariant:
		return "variant"
	default:
		return "excluded"
	}
}

// partExt is the extension of indexable part files.
const partExt = ".dat"

// Classify maps a slash-separated path relative to the parts area to its
// kind. Pure: independent of the walking mechanism, so traversal and
// classification are testable separately. isVariantDir decides whether a
// directory name marks patterned variants; the boundary is a library
// naming convention, so it comes from configuration.
func Classify(rel string, isVariantDir func(string) bool) Kind {
	if !strings.EqualFold(path.Ext(rel), partExt) {
		return Excluded
	}
	dir := path.Dir(rel)
	if dir == "." {
		return PlainPart
	}
	if isVariantDir != nil {
		for _, seg := range strings.Split(dir, "/") {
			if isVariantDir(seg) {
				return PatternedVariant
			}
		}
	}
	return PlainPart
}

// VariantDirSet builds an isVariantDir predicate from a list of directory
// names, matched case-insensitively.
func VariantDirSet(names []string) func(string) bool {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return func(dir string) bool {
		_, ok := set[strings.ToLower(dir)]
		return ok
	}
}
