package detect

import (
	"regexp"
	"strings"
)

// CompileGlob converts a file glob into an anchored matcher for
// slash-separated paths relative to the scan root.
//
// Semantics:
//   - `**` matches zero or more whole path segments; a leading `**/` also
//     matches root-level files, so `**/x` matches both `x` and `a/b/x`.
//   - `*` matches any run of characters except the path separator.
//   - `?` matches exactly one character except the path separator.
//
// Everything else is literal. Patterns use `/` regardless of platform.
func CompileGlob(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	for i := 0; i < len(pattern); {
		switch {
		case strings.HasPrefix(pattern[i:], "**/"):
			sb.WriteString("(?:[^/]+/)*")
			i += 3
		case strings.HasPrefix(pattern[i:], "**"):
			sb.WriteString(".*")
			i += 2
		case pattern[i] == '*':
			sb.WriteString("[^/]*")
			i++
		case pattern[i] == '?':
			sb.WriteString("[^/]")
			i++
		default:
			sb.WriteString(regexp.QuoteMeta(string(pattern[i])))
			i++
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}
