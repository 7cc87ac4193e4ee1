package render

import (
	"regexp"
	"strings"
)

var (
	fenceLine    = regexp.MustCompile("^\\s*(`{3,}|~{3,})")
	headingLine  = regexp.MustCompile(`^#{1,6}\s`)
	bulletLine   = regexp.MustCompile(`^[-*]\s+`)
	numberedLine = regexp.MustCompile(`^\d+\.\s+`)
)

// startsSection reports whether line opens a heading or a list item.
func startsSection(line string) bool {
	return headingLine.MatchString(line) || bulletLine.MatchString(line) || numberedLine.MatchString(line)
}

// SplitMarkdown cuts md into display chunks. A cut happens before a heading
// or list item that follows a blank line (or starts the document), and
// never inside a fenced code block. A fence closes only on a line that uses
// the same marker character it opened with. Chunks are returned without
// surrounding blank lines; blank-only chunks are dropped.
func SplitMarkdown(md string) []string {
	lines := strings.Split(md, "\n")
	var (
		chunks    []string
		buf       []string
		fence     byte // 0 outside a fence, else '`' or '~'
		prevBlank = true
	)
	flush := func() {
		if chunk := joinTrimmed(buf); chunk != "" {
			chunks = append(chunks, chunk)
		}
		buf = buf[:0]
	}
	for _, line := range lines {
		if m := fenceLine.FindStringSubmatch(line); m != nil {
			marker := m[1][0]
			switch fence {
			case 0:
				fence = marker
			case marker:
				fence = 0
			}
			buf = append(buf, line)
			prevBlank = false
			continue
		}
		if fence == 0 && prevBlank && startsSection(line) {
			flush()
		}
		buf = append(buf, line)
		prevBlank = strings.TrimSpace(line) == ""
	}
	flush()
	return chunks
}

// Blocks returns the chunks to display for md. When splitting yields at
// most one chunk the original text is kept whole, whitespace included.
func Blocks(md string) []string {
	chunks := SplitMarkdown(md)
	if len(chunks) <= 1 {
		return []string{md}
	}
	return chunks
}

func joinTrimmed(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
