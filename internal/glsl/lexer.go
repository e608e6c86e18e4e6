// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strings"
	"unicode/utf8"
)

// tokenKind classifies a lexical token.
type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokNumber
	tokPunct
	tokDirective
	tokEOF
)

// token is a lexical token with the 1-based line it starts on.
type token struct {
	kind tokenKind
	text string
	line int
}

// stripComments replaces comments with spaces, keeping newlines so line
// numbers stay intact. An unterminated block comment is reported through ok.
func stripComments(src string) (out string, ok bool) {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '/' && i+1 < len(src) {
			switch src[i+1] {
			case '/':
				for i < len(src) && src[i] != '\n' {
					i++
				}
				if i < len(src) {
					b.WriteByte('\n')
				}
				continue
			case '*':
				end := strings.Index(src[i+2:], "*/")
				if end < 0 {
					return b.String(), false
				}
				for _, r := range src[i : i+2+end+2] {
					if r == '\n' {
						b.WriteByte('\n')
					}
				}
				i += 2 + end + 1
				b.WriteByte(' ')
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String(), true
}

// lex splits comment-free source into tokens. Preprocessor lines become a
// single tokDirective holding the whole line.
func lex(src string) ([]token, *Diagnostic) {
	var toks []token
	line := 1
	atLineStart := true
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
			atLineStart = true
			continue
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			i++
			continue
		case c == '#':
			if !atLineStart {
				return nil, &Diagnostic{Line: line, Token: "#", Message: "invalid directive placement"}
			}
			j := i
			for j < len(src) && src[j] != '\n' {
				j++
			}
			toks = append(toks, token{kind: tokDirective, text: strings.TrimSpace(src[i:j]), line: line})
			i = j
			continue
		}
		atLineStart = false

		switch {
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], line: line})
			i = j
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			j := i + 1
			for j < len(src) {
				d := src[j]
				exponentSign := (d == '+' || d == '-') && (src[j-1] == 'e' || src[j-1] == 'E') &&
					!strings.HasPrefix(src[i:], "0x") && !strings.HasPrefix(src[i:], "0X")
				if !isIdentPart(d) && d != '.' && !exponentSign {
					break
				}
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j], line: line})
			i = j
		case strings.ContainsRune("(){}[];,.=+-*/<>!&|^%?:~", rune(c)):
			toks = append(toks, token{kind: tokPunct, text: string(c), line: line})
			i++
		default:
			r, _ := utf8.DecodeRuneInString(src[i:])
			return nil, &Diagnostic{Line: line, Token: string(r), Message: "invalid character"}
		}
	}
	// End of file is reported on the line of the last token, not past a
	// trailing newline.
	eof := 1
	if len(toks) > 0 {
		eof = toks[len(toks)-1].line
	}
	toks = append(toks, token{kind: tokEOF, line: eof})
	return toks, nil
}

// isIdentStart reports whether c can begin an identifier. GLSL identifiers
// are ASCII.
func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
