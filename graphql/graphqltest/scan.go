package graphqltest

import (
	"fmt"
	"slices"

	"github.com/jonwraymond/graphqltrace/graphql"
)

// Field is one selected field of a parsed document.
type Field struct {
	Name string
	Path []string
}

func scanFields(body string) ([]Field, error) {
	var (
		out    []Field
		parent []string
		last   string
		depth  int
		parens int
	)

	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '(':
			parens++
			i++
		case c == ')':
			if parens == 0 {
				return nil, syntaxError(body, i)
			}
			parens--
			i++
		case parens > 0:
			i++
		case c == '{':
			if depth > 0 {
				if last == "" {
					return nil, syntaxError(body, i)
				}
				parent = append(parent, last)
			}
			depth++
			last = ""
			i++
		case c == '}':
			if depth == 0 {
				return nil, syntaxError(body, i)
			}
			depth--
			if depth > 0 {
				parent = parent[:len(parent)-1]
			}
			last = ""
			i++
		case isNameStart(c):
			j := i + 1
			for j < len(body) && isNameContinue(body[j]) {
				j++
			}
			if depth > 0 {
				name := body[i:j]
				out = append(out, Field{Name: name, Path: append(slices.Clone(parent), name)})
				last = name
			}
			i = j
		default:
			i++
		}
	}

	if depth != 0 || parens != 0 {
		return nil, graphql.NewError("Syntax Error: Expected Name, found <EOF>.")
	}
	if len(out) == 0 {
		return nil, graphql.NewError("Syntax Error: Unexpected <EOF>.")
	}
	return out, nil
}

func syntaxError(body string, pos int) *graphql.Error {
	return graphql.NewError(fmt.Sprintf("Syntax Error: Unexpected '%c' at %d.", body[pos], pos))
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
