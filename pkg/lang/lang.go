// Package lang holds per-language tokenization profiles: keyword sets and
// comment delimiter rules, selected by language hint or file extension.
package lang

import (
	"path/filepath"
	"sort"
	"strings"
)

// BlockComment is a pair of block comment delimiters.
type BlockComment struct {
	Open  string
	Close string
}

// Profile describes how one language is preprocessed. Profiles are plain
// data; there is no per-language code path beyond what they declare.
type Profile struct {
	Name          string
	Keywords      map[string]struct{}
	LineComments  []string
	BlockComments []BlockComment
	// TripleQuoted strings are stripped like block comments (Python
	// docstrings).
	TripleQuoted bool
}

// IsKeyword reports whether word is a reserved word in this language.
func (p *Profile) IsKeyword(word string) bool {
	_, ok := p.Keywords[word]
	return ok
}

func keywordSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

var cFamilyKeywords = keywordSet(`
auto break case char const continue default do double else enum extern float
for goto if inline int long register restrict return short signed sizeof
static struct switch typedef union unsigned void volatile while class
typename template this new delete public private protected friend virtual
operator namespace using try catch throw bool true false nullptr
`)

var javaKeywords = keywordSet(`
abstract assert boolean break byte case catch char class const continue
default do double else enum extends final finally float for goto if
implements import instanceof int interface long native new package private
protected public return short static strictfp super switch synchronized this
throw throws transient try void volatile while true false null var
`)

var jsKeywords = keywordSet(`
break case catch class const continue debugger default delete do else export
extends finally for function if import in instanceof new return super switch
this throw try typeof var void while with yield let static async await of
true false null undefined interface type enum implements declare readonly
`)

var pyKeywords = keywordSet(`
False None True and as assert async await break class continue def del elif
else except finally for from global if import in is lambda nonlocal not or
pass raise return try while with yield match case self
`)

var goKeywords = keywordSet(`
break case chan const continue default defer else fallthrough for func go
goto if import interface map package range return select struct switch type
var nil true false
`)

var slashComments = []string{"//"}
var hashComments = []string{"#"}
var cBlocks = []BlockComment{{Open: "/*", Close: "*/"}}

// profiles maps a language tag to its profile. The "unknown" profile strips
// both C-style and hash comments, matching how mixed-language corpora were
// historically handled.
var profiles = map[string]*Profile{
	"c":          {Name: "c", Keywords: cFamilyKeywords, LineComments: slashComments, BlockComments: cBlocks},
	"cpp":        {Name: "cpp", Keywords: cFamilyKeywords, LineComments: slashComments, BlockComments: cBlocks},
	"java":       {Name: "java", Keywords: javaKeywords, LineComments: slashComments, BlockComments: cBlocks},
	"javascript": {Name: "javascript", Keywords: jsKeywords, LineComments: slashComments, BlockComments: cBlocks},
	"typescript": {Name: "typescript", Keywords: jsKeywords, LineComments: slashComments, BlockComments: cBlocks},
	"go":         {Name: "go", Keywords: goKeywords, LineComments: slashComments, BlockComments: cBlocks},
	"python": {
		Name:         "python",
		Keywords:     pyKeywords,
		LineComments: hashComments,
		TripleQuoted: true,
	},
	"unknown": {
		Name:          "unknown",
		Keywords:      cFamilyKeywords,
		LineComments:  []string{"//", "#"},
		BlockComments: cBlocks,
	},
}

var extensions = map[string]string{
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".hh":   "cpp",
	".hxx":  "cpp",
	".java": "java",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".go":   "go",
	".py":   "python",
}

// ByHint resolves a profile from a language hint. The hint may be a language
// tag ("cpp"), a file extension (".cpp"), or a path ("a/main.cpp"); anything
// unrecognized falls back to the permissive "unknown" profile.
func ByHint(hint string) *Profile {
	h := strings.ToLower(strings.TrimSpace(hint))
	if p, ok := profiles[h]; ok {
		return p
	}
	ext := h
	if strings.ContainsAny(h, "/\\.") {
		ext = strings.ToLower(filepath.Ext(h))
	}
	if !strings.HasPrefix(ext, ".") && ext != "" {
		ext = "." + ext
	}
	if tag, ok := extensions[ext]; ok {
		return profiles[tag]
	}
	return profiles["unknown"]
}

// SourceExtensions returns the extensions the corpus walker treats as source
// files, sorted lexically.
func SourceExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
