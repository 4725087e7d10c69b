package analyze

import (
	"strings"

	"github.com/iosxx/github-project-analyzer/internal/models"
)

// sectionMarker prefixes each heading line in the model's response.
const sectionMarker = "### "

// ParseSections splits a model response into a heading→body mapping. A line
// starting with the marker opens a section named by the rest of the line;
// every following line up to the next marker belongs to its body. Lines
// before the first heading are discarded. A repeated heading overwrites the
// earlier body; downstream fallback order depends on that deterministic
// overwrite. Never fails: worst case is an empty or partial mapping.
func ParseSections(response string) models.NarrativeSections {
	sections := models.NarrativeSections{}

	var current string
	var body []string

	commit := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(body, "\n"))
		}
	}

	for _, line := range strings.Split(response, "\n") {
		if strings.HasPrefix(line, sectionMarker) {
			commit()
			current = strings.TrimSpace(line[len(sectionMarker):])
			body = nil
			continue
		}
		if current != "" {
			body = append(body, line)
		}
	}
	commit()

	return sections
}
