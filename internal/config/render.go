package config

import (
	"fmt"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# answerview configuration (TOML)\n")

	topLevel, sections, sectionOrder := groupOptions(GetConfigOptions())

	for _, o := range topLevel {
		writeTOMLOption(&b, o.Key, o.Default, o.Comment)
	}

	for _, section := range sectionOrder {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// groupOptions splits dotted keys into TOML sections, keeping first-seen order.
func groupOptions(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	topLevel := make([]ConfigOption, 0, len(opts))
	sections := make(map[string][]ConfigOption)
	sectionOrder := make([]string, 0)
	for _, o := range opts {
		section, key, dotted := strings.Cut(o.Key, ".")
		if !dotted {
			topLevel = append(topLevel, o)
			continue
		}
		if _, ok := sections[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{
			Key:     key,
			Default: o.Default,
			Comment: o.Comment,
		})
	}
	return topLevel, sections, sectionOrder
}

// UpdateTOML merges defaults into an existing TOML string and comments out unknown keys.
// Missing keys are added to the end of their section; sections that do not
// exist yet are appended.
func UpdateTOML(existing string) (string, bool) {
	lines := strings.Split(existing, "\n")
	opts := GetConfigOptions()

	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	existingKeys := make(map[string]bool)
	existingSections := map[string]bool{"": true}
	section := ""
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if name, ok := parseTOMLSection(trim); ok {
			section = name
			existingSections[section] = true
			continue
		}
		if key, ok := parseTOMLKey(line); ok && !isComment(trim) {
			existingKeys[joinKey(section, key)] = true
		}
	}

	missing := make([]ConfigOption, 0)
	for _, o := range opts {
		if !existingKeys[o.Key] {
			missing = append(missing, o)
		}
	}
	topLevel, sections, sectionOrder := groupOptions(missing)
	sections[""] = topLevel
	changed := len(missing) > 0

	out := make([]string, 0, len(lines)+2*len(missing))
	flush := func(name string) {
		for _, o := range sections[name] {
			writeTOMLOptionLines(&out, o.Key, o.Default, o.Comment)
		}
		delete(sections, name)
	}

	section = ""
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if name, ok := parseTOMLSection(trim); ok {
			flush(section)
			section = name
			out = append(out, line)
			continue
		}
		if trim == "" || isComment(trim) {
			out = append(out, line)
			continue
		}
		key, ok := parseTOMLKey(line)
		if ok && !known[joinKey(section, key)] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema")
			out = append(out, indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
			continue
		}
		out = append(out, line)
	}
	flush(section)

	added := false
	for _, name := range sectionOrder {
		if existingSections[name] {
			continue
		}
		if !added {
			out = append(out, "", "# Added by config update")
			added = true
		}
		out = append(out, "["+name+"]")
		flush(name)
	}

	return strings.Join(out, "\n"), changed
}

func parseTOMLSection(trim string) (string, bool) {
	if !strings.HasPrefix(trim, "[") || !strings.HasSuffix(trim, "]") {
		return "", false
	}
	return strings.TrimSpace(trim[1 : len(trim)-1]), true
}

func isComment(trim string) bool {
	return strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";")
}

func joinKey(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") {
		return "", false
	}
	if strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	var lines []string
	writeTOMLOptionLines(&lines, key, value, comment)
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
}

func writeTOMLOptionLines(lines *[]string, key string, value any, comment string) {
	if comment != "" {
		*lines = append(*lines, "# "+comment)
	}
	switch v := value.(type) {
	case string:
		*lines = append(*lines, fmt.Sprintf("%s = %q", key, v), "")
	case bool, int, int64, float64:
		*lines = append(*lines, fmt.Sprintf("%s = %v", key, v), "")
	}
}
