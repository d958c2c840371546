package scanner

import (
	"bufio"
	"io"
	"strings"
)

// titleReadLimit bounds how much of a part file is read while looking for
// its title. The title is conventionally the first comment line, so a few
// KiB is plenty even for files with long licence preambles.
const titleReadLimit = 4096

// Title extracts the declared title from the head of a part file: the
// first "0 ..." comment line, skipping meta directives ("0 !..."), BFC
// statements, and FILE markers. A "0 Name: ..." line yields the text
// after the colon. Absence is expected, not exceptional: the boolean is
// false when no usable title appears in the leading portion.
func Title(r io.Reader) (string, bool) {
	sc := bufio.NewScanner(io.LimitReader(r, titleReadLimit))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !strings.HasPrefix(line, "0") {
			continue
		}
		if strings.HasPrefix(line, "0 !") || strings.HasPrefix(line, "0 BFC") {
			continue
		}
		upper := strings.ToUpper(line)
		if strings.HasPrefix(upper, "0 FILE") {
			continue
		}
		if strings.HasPrefix(upper, "0 NAME") {
			if _, after, ok := strings.Cut(line, ":"); ok {
				if title := strings.TrimSpace(after); title != "" {
					return title, true
				}
				return "", false
			}
			// "0 Name" without a colon falls through to the generic case.
		}
		if title := strings.TrimSpace(line[1:]); title != "" {
			return title, true
		}
		// The first qualifying comment line decides; an empty one means
		// the file declares no title.
		return "", false
	}
	return "", false
}
