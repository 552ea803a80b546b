package templating

import (
	"strconv"
	"strings"
)

// Placeholder keys.
const (
	KeyRootPath   = "root_path"
	KeyIndex      = "i"
	KeyPrettyName = "input.pretty_name"
	KeyRelPath    = "input.rel_path"
	KeyReference  = "input.abs_path_or_io"
	KeyGuessedSep = "input.guessed_sep"
)

// Substitute replaces $key and ${key} placeholders found in
// vars. A key starts with a letter or underscore and goes on
// with letters, digits, underscores and dots; the longest
// such run is the key. "$$" yields a single "$". Unknown
// keys and malformed placeholders are kept as they are.
func Substitute(text string, vars map[string]string) string {
	if !strings.Contains(text, "$") {
		return text
	}

	var sb strings.Builder

	sb.Grow(len(text))

	for {
		idx := strings.IndexByte(text, '$')
		if idx < 0 {
			sb.WriteString(text)

			return sb.String()
		}

		sb.WriteString(text[:idx])
		text = text[idx+1:]

		if strings.HasPrefix(text, "$") {
			sb.WriteByte('$')
			text = text[1:]

			continue
		}

		if n := keyLen(text); n > 0 {
			key := text[:n]
			text = text[n:]

			if val, ok := vars[key]; ok {
				sb.WriteString(val)
			} else {
				sb.WriteString("$" + key)
			}

			continue
		}

		if strings.HasPrefix(text, "{") {
			n := keyLen(text[1:])
			if n > 0 && len(text) > n+1 && text[n+1] == '}' {
				key := text[1 : n+1]
				text = text[n+2:]

				if val, ok := vars[key]; ok {
					sb.WriteString(val)
				} else {
					sb.WriteString("${" + key + "}")
				}

				continue
			}
		}

		sb.WriteByte('$')
	}
}

// keyLen returns the length of the key starting s, 0 when s
// does not start with one.
func keyLen(s string) int {
	for i := range len(s) {
		ch := s[i]

		switch {
		case ch == '_',
			ch >= 'a' && ch <= 'z',
			ch >= 'A' && ch <= 'Z':
		case i > 0 && (ch == '.' || ch >= '0' && ch <= '9'):
		default:
			return i
		}
	}

	return len(s)
}

// globalVars binds the placeholders available everywhere in
// a template.
func globalVars(workingDir string) map[string]string {
	return map[string]string{
		KeyRootPath: workingDir,
	}
}

// loopVars binds the placeholders of the idx-th loop
// iteration.
func loopVars(
	workingDir string,
	idx int,
	in Input,
) map[string]string {
	return map[string]string{
		KeyRootPath:   workingDir,
		KeyIndex:      strconv.Itoa(idx),
		KeyPrettyName: in.PrettyName,
		KeyRelPath:    in.RelPath,
		KeyReference:  in.Reference,
		KeyGuessedSep: string(in.GuessedSep),
	}
}
