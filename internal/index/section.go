package index

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// headingRegex matches structural headings: one to four marker characters
// followed by the title. Marker count gives nesting depth.
var headingRegex = regexp.MustCompile(`^(#{1,4})\s+(.+)$`)

// headingFrame is one open ancestor on the extraction stack.
type headingFrame struct {
	depth int
	title string
}

// ExtractSections decomposes structured text into heading-delimited sections.
// The caller fills in Section.File.
//
// Bodies accumulate between headings; a body starts on the line after its
// heading and its trimmed text must be non-empty to be emitted, so
// heading-only spans contribute ancestry but no section. fallbackHeader
// names the span before the first heading (typically the file path).
// A document with no headings yields exactly one section covering it.
func ExtractSections(content, fallbackHeader string) []Section {
	lines := strings.Split(content, "\n")

	var sections []Section
	var stack []headingFrame
	var body []string

	currentHeader := fallbackHeader
	lineStart := 0

	flush := func(lineEnd int) {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text == "" {
			return
		}
		// Ancestors exclude the closing section's own title.
		var hierarchy []string
		if len(stack) > 0 {
			for _, f := range stack[:len(stack)-1] {
				hierarchy = append(hierarchy, f.title)
			}
		}
		sections = append(sections, Section{
			Header:    currentHeader,
			Hierarchy: hierarchy,
			Content:   text,
			Tokens:    Tokenize(text + " " + currentHeader),
			LineStart: lineStart,
			LineEnd:   lineEnd,
		})
	}

	for i, line := range lines {
		m := headingRegex.FindStringSubmatch(line)
		if m == nil {
			body = append(body, line)
			continue
		}

		flush(i)

		depth := len(m[1])
		title := strings.TrimSpace(m[2])
		currentHeader = title

		// Siblings replace each other; deeper headings nest under
		// shallower open ones.
		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, headingFrame{depth: depth, title: title})

		body = body[:0]
		lineStart = i + 1
	}

	flush(len(lines))

	return sections
}

// WholeFileSection wraps unstructured (code) content as a single section.
// The stored body is capped at previewChars to bound index size, but tokens
// are drawn from the full content so search recall is preserved.
func WholeFileSection(content, relPath string, previewChars int) Section {
	preview := content
	if previewChars > 0 {
		preview = TruncateUTF8(preview, previewChars)
	}
	return Section{
		Header:    relPath,
		Content:   preview,
		Tokens:    Tokenize(content),
		LineStart: 0,
		LineEnd:   strings.Count(content, "\n") + 1,
	}
}

// TruncateUTF8 shortens s to at most max bytes without splitting a rune.
func TruncateUTF8(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
