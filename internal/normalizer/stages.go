package normalizer

import (
	"strings"
	"unicode"
)

// Stage is one named text transformation. Apply must be pure.
type Stage struct {
	Name  string
	Apply func(text string) (string, error)
}

const (
	StageFences         = "fences"
	StageBoundary       = "boundary"
	StageCharacters     = "characters"
	StageQuotes         = "quotes"
	StageTrailingCommas = "trailing-commas"
)

// DefaultStages returns the repair sequence applied before parsing.
func DefaultStages() []Stage {
	return []Stage{
		{Name: StageFences, Apply: infallible(StripFences)},
		{Name: StageBoundary, Apply: TrimToObject},
		{Name: StageCharacters, Apply: infallible(RepairCharacters)},
		{Name: StageQuotes, Apply: infallible(EscapeInteriorQuotes)},
		{Name: StageTrailingCommas, Apply: infallible(DropTrailingCommas)},
	}
}

func infallible(fn func(string) string) func(string) (string, error) {
	return func(text string) (string, error) {
		return fn(text), nil
	}
}

const fence = "```"

// StripFences returns the body of the first fenced code block, dropping an
// optional language tag. Text without a fence, or whose first block holds no
// object at all, is returned unchanged.
func StripFences(text string) string {
	start := strings.Index(text, fence)
	if start < 0 {
		return text
	}

	body := text[start+len(fence):]
	tagLen := 0
	for tagLen < len(body) && isTagByte(body[tagLen]) {
		tagLen++
	}
	if tagLen > 0 && (tagLen == len(body) || !isTagByte(body[tagLen]) && strings.IndexByte(" \t\r\n{[", body[tagLen]) >= 0) {
		body = body[tagLen:]
	}

	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	if !strings.Contains(body, "{") {
		return text
	}
	return strings.TrimSpace(body)
}

func isTagByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '+'
}

// TrimToObject keeps the span from the first '{' to the last '}'.
func TrimToObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &Error{Code: CodeNoJSONFound}
	}
	end := strings.LastIndexByte(text, '}')
	if end < start {
		// unterminated object, left for the parser to report
		return text[start:], nil
	}
	return text[start : end+1], nil
}

var smartQuotes = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
	"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
)

// RepairCharacters straightens typographic quotes and drops control
// characters other than newline, tab and carriage return. It is idempotent.
func RepairCharacters(text string) string {
	text = smartQuotes.Replace(text)
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\t', '\r':
			return r
		case '\uFEFF':
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// EscapeInteriorQuotes escapes quotes that sit inside a string literal.
//
// A quote inside a string is taken as the closing one only when the next
// significant character could follow a JSON string (':', ',', '}', ']' or end
// of text). This is a heuristic scan, not a tokenizer: a string whose content
// itself contains `", "` followed by something value-like will be split in
// the wrong place. Raw newlines, tabs and invalid escapes inside strings are
// escaped on the way.
func EscapeInteriorQuotes(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)

	inString := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !inString {
			b.WriteByte(c)
			if c == '"' {
				inString = true
			}
			continue
		}

		switch c {
		case '\\':
			if i+1 < len(text) && strings.IndexByte(`"\/bfnrtu`, text[i+1]) >= 0 {
				b.WriteByte(c)
				i++
				b.WriteByte(text[i])
			} else {
				b.WriteString(`\\`)
			}
		case '"':
			if closesString(text, i+1) {
				b.WriteByte(c)
				inString = false
			} else {
				b.WriteString(`\"`)
			}
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func closesString(text string, from int) bool {
	i := skipSpace(text, from)
	if i == len(text) {
		return true
	}
	switch text[i] {
	case ':', '}', ']':
		return true
	case ',':
		j := skipSpace(text, i+1)
		return j == len(text) || startsValue(text[j:])
	}
	return false
}

func startsValue(rest string) bool {
	switch c := rest[0]; {
	case c == '"' || c == '{' || c == '[' || c == '}' || c == ']' || c == '-':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	for _, literal := range []string{"true", "false", "null"} {
		if strings.HasPrefix(rest, literal) {
			return true
		}
	}
	return false
}

func skipSpace(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r') {
		i++
	}
	return i
}

// DropTrailingCommas removes commas directly before '}' or ']' outside strings.
func DropTrailingCommas(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(text) {
					i++
					b.WriteByte(text[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		if c == ',' {
			if j := skipSpace(text, i+1); j < len(text) && (text[j] == '}' || text[j] == ']') {
				continue
			}
		}
		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}
