package dataclient

import (
	"fmt"
	"regexp"
	"strings"
)

var returningClause = regexp.MustCompile(`(?i)\bRETURNING\b`)

// hasReturning reports whether a statement produces rows
func hasReturning(query string) bool {
	return returningClause.MatchString(query)
}

// rewriteNamed scans query for :name placeholders and returns the query with
// each ':' replaced by marker, plus the distinct placeholder names in order
// of first appearance. Quoted text, comments and '::' casts are left alone.
func rewriteNamed(query string, marker byte) (string, []string) {
	var (
		out   strings.Builder
		names []string
		seen  = make(map[string]bool)
	)
	out.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"':
			end := strings.IndexByte(query[i+1:], c)
			if end < 0 {
				out.WriteString(query[i:])
				return out.String(), names
			}
			out.WriteString(query[i : i+end+2])
			i += end + 1
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				out.WriteString(query[i:])
				return out.String(), names
			}
			out.WriteString(query[i : i+end+1])
			i += end
		case c == ':' && i+1 < len(query) && query[i+1] == ':':
			out.WriteString("::")
			i++
		case c == ':' && i+1 < len(query) && isIdentStart(query[i+1]):
			j := i + 1
			for j < len(query) && isIdentPart(query[j]) {
				j++
			}
			name := query[i+1 : j]
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			out.WriteByte(marker)
			out.WriteString(name)
			i = j - 1
		default:
			out.WriteByte(c)
		}
	}

	return out.String(), names
}

// bindParams matches the placeholders used by a query against the supplied
// params. Unused params are dropped; a missing one is an error.
func bindParams(names []string, params []Param) (map[string]any, error) {
	supplied := make(map[string]any, len(params))
	for _, p := range params {
		supplied[p.Name] = p.Value
	}

	bound := make(map[string]any, len(names))
	for _, name := range names {
		v, ok := supplied[name]
		if !ok {
			return nil, fmt.Errorf("missing value for parameter :%s", name)
		}
		bound[name] = v
	}
	return bound, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// statementVerb returns the leading SQL keyword, used as the log operation
func statementVerb(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

func paramNames(params []Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}
