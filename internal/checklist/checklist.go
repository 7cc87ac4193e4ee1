// Package checklist gates the Plan/Staging/Validation/Rollback block that
// accompanies proposed writes, keeping it only for write-like responses.
package checklist

import (
	"strings"

	"github.com/mithrel/answerview/pkg/api"
)

// WriteKinds are the statement kinds treated as writes.
var WriteKinds = map[string]bool{
	"INSERT":   true,
	"UPDATE":   true,
	"DELETE":   true,
	"MERGE":    true,
	"ALTER":    true,
	"CREATE":   true,
	"DROP":     true,
	"TRUNCATE": true,
	"GRANT":    true,
	"REVOKE":   true,
}

// Headings open a checklist section; matched case-insensitively on a
// trimmed line.
var Headings = []string{"Plan:", "Staging:", "Validation:", "Rollback:"}

// IsWriteLike reports whether the payload describes a write.
func IsWriteLike(p api.ResponsePayload) bool {
	ex := p.Execution
	if !ex.IsObject() {
		return false
	}
	if w := ex.Field("write"); w.Kind() == api.KindBool && w.AsBool() {
		return true
	}
	return WriteKinds[api.NormalizeKind(ex.Field("stmt_kind"))]
}

// Apply returns md unchanged for write-like payloads and with the
// checklist block removed otherwise.
func Apply(md string, p api.ResponsePayload) string {
	if IsWriteLike(p) {
		return md
	}
	return Strip(md)
}

// Strip removes the checklist block from md. The block runs from the first
// heading (plus the blank lines above it) to the last heading and the
// bullet or blank lines that follow it. When the block was set off by
// blank lines on both sides, the surrounding text stays one blank line
// apart; otherwise the two sides join directly. The result is trimmed of
// blank lines and repeated blank lines are collapsed. Without a heading md is returned as is.
func Strip(md string) string {
	if md == "" {
		return md
	}
	lines := splitLines(md)

	first, last := -1, -1
	for i, line := range lines {
		if isHeading(line) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return md
	}

	start := first
	for start > 0 && isBlank(lines[start-1]) {
		start--
	}
	end := last
	for i := last + 1; i < len(lines); i++ {
		if !isBlank(lines[i]) && !isBullet(lines[i]) {
			break
		}
		end = i
	}

	remaining := make([]string, 0, len(lines)-(end-start+1)+1)
	remaining = append(remaining, lines[:start]...)
	if isBlank(lines[start]) && isBlank(lines[end]) && hasContent(lines[:start]) && hasContent(lines[end+1:]) {
		remaining = append(remaining, "")
	}
	remaining = append(remaining, lines[end+1:]...)
	return strings.Join(collapseBlank(trimBlank(remaining)), "\n")
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, h := range Headings {
		if strings.EqualFold(trimmed, h) {
			return true
		}
	}
	return false
}

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }

func isBullet(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "•")
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if !isBlank(l) {
			return true
		}
	}
	return false
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func collapseBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	blankRun := 0
	for _, l := range lines {
		if isBlank(l) {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		out = append(out, l)
	}
	return out
}
