// Package citations assembles the reference section appended to enhanced
// article content.
package citations

import (
	"fmt"
	"strings"
)

// delimiter separates the rewritten body from the citation block.
const delimiter = "\n\n---\n**References:**\n"

// Assemble appends a clearly delimited citation section to the rewritten
// text, listing each source URL in the order it was extracted. With no
// sources, the text is returned unchanged.
func Assemble(rewritten string, sourceURLs []string) string {
	if len(sourceURLs) == 0 {
		return rewritten
	}

	lines := make([]string, 0, len(sourceURLs))
	for _, u := range sourceURLs {
		lines = append(lines, fmt.Sprintf("Source: %s", u))
	}

	return rewritten + delimiter + strings.Join(lines, "\n")
}

// Strip removes the citation block from assembled content, returning the
// rewritten body alone. Content without a citation block is returned as-is.
func Strip(content string) string {
	if idx := strings.LastIndex(content, delimiter); idx >= 0 {
		return content[:idx]
	}
	return content
}

// Sources returns the source URLs listed in assembled content, in order.
func Sources(content string) []string {
	idx := strings.LastIndex(content, delimiter)
	if idx < 0 {
		return nil
	}

	var urls []string
	for _, line := range strings.Split(content[idx+len(delimiter):], "\n") {
		line = strings.TrimSpace(line)
		if u, ok := strings.CutPrefix(line, "Source: "); ok {
			urls = append(urls, u)
		}
	}
	return urls
}
