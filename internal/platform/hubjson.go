package platform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseFavorites decodes favoriteProjects.json. The Hub writes the array as
// a JSON string holding JSON, so a plain array, a string-encoded array, and
// the raw unescape-then-trim form are all accepted.
func ParseFavorites(data []byte) ([]string, error) {
	text := strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff"))
	if text == "" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return list, nil
	}

	var inner string
	if err := json.Unmarshal([]byte(text), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &list); err == nil {
			return list, nil
		}
	}

	unescaped := strings.Trim(Unescape(text), `"`)
	if err := json.Unmarshal([]byte(unescaped), &list); err != nil {
		return nil, fmt.Errorf("failed to parse favorites list: %w", err)
	}
	return list, nil
}

// ParseSecondaryInstall decodes secondaryInstallPath.json, a JSON string
// holding one directory. An empty result means no secondary location.
func ParseSecondaryInstall(data []byte) string {
	text := strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff"))
	if text == "" {
		return ""
	}

	var path string
	if err := json.Unmarshal([]byte(text), &path); err == nil {
		return strings.TrimSpace(path)
	}
	return strings.TrimSpace(strings.Trim(Unescape(text), `"`))
}

// Unescape resolves backslash escapes the way a regex unescape does:
// \n \r \t \f \v \a \e, \xHH, \uHHHH, and any other escaped character
// stands for itself. A trailing lone backslash is kept.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}

		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case 'a':
			b.WriteByte('\a')
		case 'e':
			b.WriteByte(0x1b)
		case 'x':
			if r, ok := hexRune(s, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte('x')
			}
		case 'u':
			if r, ok := hexRune(s, i+1, 4); ok {
				b.WriteRune(r)
				i += 4
			} else {
				b.WriteByte('u')
			}
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size - 1
		}
	}

	return b.String()
}

func hexRune(s string, start, n int) (rune, bool) {
	if start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
