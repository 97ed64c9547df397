// Package preprocess converts raw source text into a normalized token
// stream: comments are stripped, string and numeric literals collapse to
// placeholders, identifiers collapse to ID, and keywords survive verbatim.
// The output depends only on the input text and the language profile, so two
// files that differ solely in identifier names produce identical streams.
package preprocess

import (
	"strings"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/lang"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/token"
)

// Preprocess runs the full pipeline for one file: strip comments per the
// language profile, then tokenize and normalize. Empty input yields an empty
// stream, never an error.
func Preprocess(raw string, hint string) []token.Token {
	profile := lang.ByHint(hint)
	stripped := StripComments(raw, profile)
	return Tokenize(stripped, profile)
}

// StripComments removes line comments, block comments, and (where the
// profile says so) triple-quoted strings. Content inside single-line string
// literals is preserved so the tokenizer can emit its STR placeholder.
func StripComments(text string, profile *lang.Profile) string {
	var sb strings.Builder
	sb.Grow(len(text))

	i := 0
	for i < len(text) {
		// Triple-quoted strings behave like block comments (docstrings).
		if profile.TripleQuoted {
			if q, ok := tripleQuoteAt(text, i); ok {
				end := strings.Index(text[i+3:], q)
				if end < 0 {
					break // unterminated, drop the rest
				}
				i += 3 + end + 3
				continue
			}
		}

		if open, closer := blockCommentAt(text, i, profile); open != "" {
			end := strings.Index(text[i+len(open):], closer)
			if end < 0 {
				break
			}
			i += len(open) + end + len(closer)
			sb.WriteByte(' ')
			continue
		}

		if marker := lineCommentAt(text, i, profile); marker != "" {
			nl := strings.IndexByte(text[i:], '\n')
			if nl < 0 {
				break
			}
			i += nl // keep the newline
			continue
		}

		// Skip over string literals so comment markers inside them are
		// not misread as comments.
		if c := text[i]; c == '"' || c == '\'' || c == '`' {
			end := stringLiteralEnd(text, i)
			sb.WriteString(text[i:end])
			i = end
			continue
		}

		sb.WriteByte(text[i])
		i++
	}

	return sb.String()
}

func tripleQuoteAt(text string, i int) (string, bool) {
	if strings.HasPrefix(text[i:], `"""`) {
		return `"""`, true
	}
	if strings.HasPrefix(text[i:], "'''") {
		return "'''", true
	}
	return "", false
}

func blockCommentAt(text string, i int, profile *lang.Profile) (open, closer string) {
	for _, bc := range profile.BlockComments {
		if strings.HasPrefix(text[i:], bc.Open) {
			return bc.Open, bc.Close
		}
	}
	return "", ""
}

func lineCommentAt(text string, i int, profile *lang.Profile) string {
	for _, marker := range profile.LineComments {
		if strings.HasPrefix(text[i:], marker) {
			return marker
		}
	}
	return ""
}

// stringLiteralEnd returns the index just past the literal starting at i,
// honoring backslash escapes. An unterminated literal runs to end of line.
func stringLiteralEnd(text string, i int) int {
	quote := text[i]
	j := i + 1
	for j < len(text) {
		switch text[j] {
		case '\\':
			j += 2
			continue
		case quote:
			return j + 1
		case '\n':
			return j
		}
		j++
	}
	return len(text)
}

// Tokenize splits comment-free text into normalized tokens. Identifiers
// become ID unless the profile recognizes them as keywords; numbers become
// NUM; string literals become STR; operators and punctuation are kept
// verbatim so statement structure still matters.
func Tokenize(text string, profile *lang.Profile) []token.Token {
	var tokens []token.Token
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		c := runes[i]

		if isWhitespace(c) {
			i++
			continue
		}

		if c == '"' || c == '\'' || c == '`' {
			skipStringLiteral(runes, &i, c)
			tokens = append(tokens, token.Token{Kind: token.String, Text: token.StrValue})
			continue
		}

		if isDigit(c) {
			skipNumber(runes, &i)
			tokens = append(tokens, token.Token{Kind: token.Number, Text: token.NumValue})
			continue
		}

		if isIdentStart(c) {
			word := collectWord(runes, &i)
			if profile.IsKeyword(word) {
				tokens = append(tokens, token.Token{Kind: token.Keyword, Text: word})
			} else {
				tokens = append(tokens, token.Token{Kind: token.Identifier, Text: token.IDValue})
			}
			continue
		}

		if op := collectOperator(runes, &i); op != "" {
			tokens = append(tokens, token.Token{Kind: token.Operator, Text: op})
			continue
		}

		tokens = append(tokens, token.Token{Kind: token.Punct, Text: string(c)})
		i++
	}

	return tokens
}

func skipStringLiteral(runes []rune, i *int, quote rune) {
	*i++
	for *i < len(runes) {
		c := runes[*i]
		*i++
		if c == quote {
			return
		}
		if c == '\\' && *i < len(runes) {
			*i++
		}
		if c == '\n' && quote != '`' {
			return
		}
	}
}

func skipNumber(runes []rune, i *int) {
	for *i < len(runes) {
		c := runes[*i]
		if isDigit(c) || c == '.' || c == '_' ||
			c == 'x' || c == 'X' || c == 'b' || c == 'B' || c == 'o' || c == 'O' ||
			(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
			c == 'e' || c == 'E' {
			*i++
		} else {
			break
		}
	}
}

func collectWord(runes []rune, i *int) string {
	start := *i
	for *i < len(runes) && isIdentChar(runes[*i]) {
		*i++
	}
	return string(runes[start:*i])
}

func collectOperator(runes []rune, i *int) string {
	if *i+2 < len(runes) {
		op3 := string(runes[*i : *i+3])
		switch op3 {
		case "<<=", ">>=", "...", "===", "!==":
			*i += 3
			return op3
		}
	}
	if *i+1 < len(runes) {
		op2 := string(runes[*i : *i+2])
		switch op2 {
		case "==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
			"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
			"++", "--", "->", "=>", "::", "..", "??", ":=":
			*i += 2
			return op2
		}
	}
	switch runes[*i] {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~', '?':
		op := string(runes[*i])
		*i++
		return op
	}
	return ""
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
