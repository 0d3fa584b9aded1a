package parser

import "strings"

// goja drops the parentheses around an expression from its range, so a
// top-level statement such as "(function () {})();" starts after its first
// "(" and "x = (y);" stops before its last ")". widenStatement grows a
// statement's range until its parentheses balance.
func (p *Parser) widenStatement(start, end int) (int, int) {
	if start < 0 || end > len(p.source) || start >= end {
		return start, end
	}
	closed, open := p.parenBalance(start, end)

	// Parentheses directly before the statement, nearest first
	var opens []int
	for i := start - 1; i >= 0; i-- {
		c := p.source[i]
		if c == '(' {
			opens = append(opens, i)
		} else if c == '/' && i > 0 && p.source[i-1] == '*' {
			// Block comment between parentheses
			comment := strings.LastIndex(p.source[:i-1], "/*")
			if comment < 0 {
				break
			}
			i = comment
		} else if !isSpace(c) {
			break
		}
	}
	if closed > len(opens) {
		closed = len(opens)
	}
	used := closed

	// Close what the statement left open, then any parentheses that wrap
	// the whole statement
	i := end
	for open > 0 {
		j := p.skipTrivia(i)
		if j >= len(p.source) || p.source[j] != ')' {
			break
		}
		i = j + 1
		end = i
		open--
	}
	for used < len(opens) {
		j := p.skipTrivia(i)
		if j >= len(p.source) || p.source[j] != ')' {
			break
		}
		i = j + 1
		end = i
		used++
	}

	if used > 0 {
		start = opens[used-1]
	}
	return start, end
}

// parenBalance scans source[start:end] and returns the number of ")" with no
// matching "(" in the range and the number of "(" left open at the end.
// Strings, templates, comments and regular expression literals are skipped.
func (p *Parser) parenBalance(start, end int) (closed, open int) {
	prev := byte(0)
	for i := start; i < end; {
		c := p.source[i]
		switch {
		case c == '(':
			open++
		case c == ')':
			if open > 0 {
				open--
			} else {
				closed++
			}
		case c == '\'' || c == '"' || c == '`':
			i = p.skipQuoted(i, c)
			prev = c
			continue
		case c == '/' && i+1 < end && (p.source[i+1] == '/' || p.source[i+1] == '*'):
			i = p.skipComment(i)
			continue
		case c == '/' && startsRegExp(prev):
			i = p.skipRegExp(i)
			prev = c
			continue
		}
		if !isSpace(c) {
			prev = c
		}
		i++
	}
	return closed, open
}

// skipTrivia returns the offset of the next byte at or after i that is not
// whitespace or part of a comment.
func (p *Parser) skipTrivia(i int) int {
	for i < len(p.source) {
		c := p.source[i]
		switch {
		case isSpace(c):
			i++
		case c == '/' && i+1 < len(p.source) && (p.source[i+1] == '/' || p.source[i+1] == '*'):
			i = p.skipComment(i)
		default:
			return i
		}
	}
	return i
}

func (p *Parser) skipComment(i int) int {
	if p.source[i+1] == '/' {
		for i < len(p.source) && p.source[i] != '\n' {
			i++
		}
		return i
	}
	for i += 2; i+1 < len(p.source); i++ {
		if p.source[i] == '*' && p.source[i+1] == '/' {
			return i + 2
		}
	}
	return len(p.source)
}

func (p *Parser) skipQuoted(i int, quote byte) int {
	for i++; i < len(p.source); i++ {
		switch p.source[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return i
}

func (p *Parser) skipRegExp(i int) int {
	inClass := false
	for i++; i < len(p.source); i++ {
		switch c := p.source[i]; {
		case c == '\\':
			i++
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			return i + 1
		case c == '\n':
			return i
		}
	}
	return i
}

// startsRegExp reports whether a "/" after prev begins a regular expression
// rather than a division.
func startsRegExp(prev byte) bool {
	switch prev {
	case 0, '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
