package index

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSections_HeaderBasedSplitting(t *testing.T) {
	content := `# Title

Welcome to the project.

## Setup

Install the dependencies.

## Usage

Run the binary.
`

	sections := ExtractSections(content, "README.md")
	require.Len(t, sections, 3)

	assert.Equal(t, "Title", sections[0].Header)
	assert.Contains(t, sections[0].Content, "Welcome to the project")

	assert.Equal(t, "Setup", sections[1].Header)
	assert.Contains(t, sections[1].Content, "Install the dependencies")

	assert.Equal(t, "Usage", sections[2].Header)
	assert.Contains(t, sections[2].Content, "Run the binary")
}

func TestExtractSections_HierarchyExcludesOwnTitle(t *testing.T) {
	content := `# Guide

Intro text.

## Install

### Linux

Use the package manager.
`

	sections := ExtractSections(content, "guide.md")
	require.Len(t, sections, 2)

	// Top-level section has no ancestors.
	assert.Equal(t, "Guide", sections[0].Header)
	assert.Empty(t, sections[0].Hierarchy)

	// The deepest section lists ancestors only, not itself.
	assert.Equal(t, "Linux", sections[1].Header)
	assert.Equal(t, []string{"Guide", "Install"}, sections[1].Hierarchy)
	assert.Equal(t, "Guide > Install", sections[1].HierarchyString())
}

func TestExtractSections_SiblingsReplaceOnStack(t *testing.T) {
	content := `# Root

## First

body one

## Second

body two

### Nested

body three
`

	sections := ExtractSections(content, "doc.md")
	require.Len(t, sections, 3)

	assert.Equal(t, []string{"Root"}, sections[0].Hierarchy)
	assert.Equal(t, []string{"Root"}, sections[1].Hierarchy)
	// Nested sits under Second, not under the already-closed First.
	assert.Equal(t, []string{"Root", "Second"}, sections[2].Hierarchy)
}

func TestExtractSections_HeadingOnlySpansOmitted(t *testing.T) {
	content := `# Empty Parent

## Child

actual content
`

	sections := ExtractSections(content, "doc.md")
	require.Len(t, sections, 1)
	assert.Equal(t, "Child", sections[0].Header)
	// The empty parent still contributes ancestry.
	assert.Equal(t, []string{"Empty Parent"}, sections[0].Hierarchy)
}

func TestExtractSections_PreambleUsesFallbackHeader(t *testing.T) {
	content := `Some notes before any heading.

# Later

more text
`

	sections := ExtractSections(content, "notes.md")
	require.Len(t, sections, 2)
	assert.Equal(t, "notes.md", sections[0].Header)
	assert.Empty(t, sections[0].Hierarchy)
	assert.Equal(t, "Later", sections[1].Header)
}

func TestExtractSections_NoHeadingsYieldsSingleSection(t *testing.T) {
	content := "plain text line one\nplain text line two\n"

	sections := ExtractSections(content, "plain.txt")
	require.Len(t, sections, 1)
	assert.Equal(t, "plain.txt", sections[0].Header)
	assert.Equal(t, 0, sections[0].LineStart)
	assert.Equal(t, 3, sections[0].LineEnd)
}

func TestExtractSections_LineRanges(t *testing.T) {
	content := "# One\nalpha\nbeta\n# Two\ngamma\n"

	sections := ExtractSections(content, "doc.md")
	require.Len(t, sections, 2)

	// Bodies start on the line after their heading and end where the next
	// heading begins (or at EOF).
	assert.Equal(t, 1, sections[0].LineStart)
	assert.Equal(t, 3, sections[0].LineEnd)
	assert.Equal(t, 4, sections[1].LineStart)
	assert.Equal(t, 6, sections[1].LineEnd)

	lineCount := len(strings.Split(content, "\n"))
	for _, s := range sections {
		assert.LessOrEqual(t, s.LineStart, s.LineEnd)
		assert.LessOrEqual(t, s.LineEnd, lineCount)
	}
}

func TestExtractSections_TokensIncludeHeader(t *testing.T) {
	content := `# Authentication

password hashing
`

	sections := ExtractSections(content, "doc.md")
	require.Len(t, sections, 1)
	assert.Contains(t, sections[0].Tokens, "authentication")
	assert.Contains(t, sections[0].Tokens, "password")
}

func TestExtractSections_DeepMarkersAreBody(t *testing.T) {
	// Five or more markers are not structural headings.
	content := `# Top

##### not a heading

body text
`

	sections := ExtractSections(content, "doc.md")
	require.Len(t, sections, 1)
	assert.Equal(t, "Top", sections[0].Header)
	assert.Contains(t, sections[0].Content, "##### not a heading")
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "abc", TruncateUTF8("abc", 10))
	assert.Equal(t, "ab", TruncateUTF8("abcd", 2))
	assert.Equal(t, "", TruncateUTF8("abc", 0))
	assert.Equal(t, "", TruncateUTF8("abc", -1))

	// "é" is two bytes; a cut landing mid-rune backs up to the boundary.
	assert.Equal(t, "caf", TruncateUTF8("café", 4))
	assert.Equal(t, "café", TruncateUTF8("café", 5))

	s := strings.Repeat("日", 10) // three bytes per rune
	for max := 0; max <= len(s); max++ {
		got := TruncateUTF8(s, max)
		assert.True(t, utf8.ValidString(got), "max=%d", max)
		assert.LessOrEqual(t, len(got), max)
	}
}

func TestWholeFileSection_MultibytePreviewStaysValid(t *testing.T) {
	content := strings.Repeat("über ", 100)

	s := WholeFileSection(content, "notes.txt", 7)
	assert.True(t, utf8.ValidString(s.Content))
	assert.LessOrEqual(t, len(s.Content), 7)
}

func TestWholeFileSection_PreviewCappedTokensFull(t *testing.T) {
	content := strings.Repeat("database ", 500) // 4500 chars

	s := WholeFileSection(content, "src/db.py", 100)
	assert.Equal(t, "src/db.py", s.Header)
	assert.Len(t, s.Content, 100)
	// Tokens come from the full content, not the preview.
	assert.Len(t, s.Tokens, 500)
	assert.Equal(t, 0, s.LineStart)
	assert.Equal(t, 1, s.LineEnd)
}
