package transcribe

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SecureFilename reduces a client-supplied name to a safe basename:
// NFKD-folded to ASCII, path separators treated as spaces, whitespace runs
// joined with '_', anything outside [A-Za-z0-9_.-] dropped and leading or
// trailing '.'/'_' trimmed. The result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var ascii strings.Builder
	for _, r := range name {
		if r < utf8.RuneSelf {
			ascii.WriteRune(r)
		}
	}
	name = ascii.String()

	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	var out strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == '_', r == '.', r == '-':
			out.WriteRune(r)
		}
	}

	return strings.Trim(out.String(), "._")
}
