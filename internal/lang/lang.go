// Package lang reads Minecraft .lang files and turns localization keys into
// display text.
package lang

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Table maps localization keys to translated text.
type Table map[string]string

// LoadFile parses the .lang file at path.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lang file: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lang file %s: %w", path, err)
	}
	return t, nil
}

// Parse reads key=value lines. Blank lines, # comments and lines without
// '=' are skipped; later duplicates win.
func Parse(r io.Reader) (Table, error) {
	t := Table{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		t[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the translation for key, if any.
func (t Table) Lookup(key string) (string, bool) {
	v, ok := t[key]
	return v, ok
}

// Resolve turns a localization key into something readable. Translations
// win; otherwise a dotted key is reduced to its title-cased last segment
// ("nomifactory.quest.normal.vacuum_freezer" -> "Vacuum Freezer") and
// anything else is returned as is. A nil Table is valid.
func (t Table) Resolve(key string) string {
	if key == "" {
		return ""
	}
	if v, ok := t[key]; ok {
		return v
	}
	return DisplayName(key)
}

// DisplayName derives a fallback name from a dotted key.
func DisplayName(key string) string {
	trimmed := strings.TrimSpace(key)
	if !strings.Contains(trimmed, ".") {
		return trimmed
	}
	last := trimmed[strings.LastIndexByte(trimmed, '.')+1:]

	words := strings.Split(last, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

var formatCode = regexp.MustCompile(`§[0-9a-fk-orA-FK-OR]`)

// StripFormatting removes § colour codes and expands %n line breaks.
func StripFormatting(s string) string {
	s = formatCode.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "%n", "\n")
}
