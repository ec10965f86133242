package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json tag", in: "intro\n```json\n{\"a\": 1}\n```\noutro", want: `{"a": 1}`},
		{name: "bare fence", in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "tag glued to object", in: "```json{\"a\": 1}```", want: `{"a": 1}`},
		{name: "unclosed fence", in: "```json\n{\"a\": 1}", want: `{"a": 1}`},
		{name: "first block wins", in: "```json\n{\"a\": 1}\n```\n```json\n{\"b\": 2}\n```", want: `{"a": 1}`},
		{name: "fence without object", in: "{\"a\": 1}\n```\nbye", want: "{\"a\": 1}\n```\nbye"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestTrimToObject(t *testing.T) {
	got, err := TrimToObject(`Sure, here it is: {"a": {"b": 1}} hope that helps}`)
	require.NoError(t, err)
	require.Equal(t, `{"a": {"b": 1}} hope that helps}`, got)

	got, err = TrimToObject(`prefix {"a": 1} suffix`)
	require.NoError(t, err)
	require.Equal(t, `{"a": 1}`, got)

	got, err = TrimToObject(`} before {"a": 1`)
	require.NoError(t, err)
	require.Equal(t, `{"a": 1`, got)

	_, err = TrimToObject("no braces here")
	require.ErrorIs(t, err, ErrNoJSONFound)
}

func TestRepairCharacters(t *testing.T) {
	require.Equal(t, `{"a": "it's"}`, RepairCharacters("{“a”: “it’s”}"))
	require.Equal(t, "a\nb\tc\rd", RepairCharacters("a\nb\tc\rd"))
	require.Equal(t, "abc", RepairCharacters("\ufeffa\x00b\x1bc\x7f"))
	require.Equal(t, `{"a": "bc"}`, RepairCharacters("{\"a\": \"b\ufeffc\"}"))
	require.Equal(t, "a\u00a0b", RepairCharacters("a\u0085\u00a0b"))
}

func TestRepairCharacters_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"{“trip”: ‘x’}",
		"\x00\x01\x02 mixed \u2028 \u200b \ufeff",
		"invalid utf8 \xe2\x80 \xff\xfe “quote”",
		"\xe2\x01\x80\x9c",
		strings.Repeat("„‟″′‚‛", 50),
	}
	for _, in := range inputs {
		once := RepairCharacters(in)
		require.Equal(t, once, RepairCharacters(once), "input %q", in)
	}
}

func TestEscapeInteriorQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "valid json untouched",
			in:   `{"a": "x \"y\" z", "b": [1, "c", true, null], "d": {"e": -1}}`,
			want: `{"a": "x \"y\" z", "b": [1, "c", true, null], "d": {"e": -1}}`,
		},
		{
			name: "interior quotes",
			in:   `{"title": "The "Grand" tour", "x": 1}`,
			want: `{"title": "The \"Grand\" tour", "x": 1}`,
		},
		{
			name: "quote before comma inside prose",
			in:   `{"d": "He said "ok", then left"}`,
			want: `{"d": "He said \"ok\", then left"}`,
		},
		{
			name: "quoted tail before closing quote",
			in:   `{"p": "20 "per person""}`,
			want: `{"p": "20 \"per person\""}`,
		},
		{
			name: "raw control whitespace",
			in:   "{\"d\": \"one\ntwo\tthree\"}",
			want: `{"d": "one\ntwo\tthree"}`,
		},
		{
			name: "invalid escape",
			in:   `{"path": "C:\temp\x"}`,
			want: `{"path": "C:\temp\\x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EscapeInteriorQuotes(tt.in))
		})
	}
}

func TestDropTrailingCommas(t *testing.T) {
	require.Equal(t, "{\"a\": [1, 2], \"b\": {\"c\": 1\n}}", DropTrailingCommas("{\"a\": [1, 2,], \"b\": {\"c\": 1,\n},}"))
	require.Equal(t, `{"a": ",}"}`, DropTrailingCommas(`{"a": ",}",}`))
	require.Equal(t, `{"a": "\",]"}`, DropTrailingCommas(`{"a": "\",]"}`))
}

func TestExcerpt(t *testing.T) {
	require.Equal(t, "short", Excerpt("short"))

	long := strings.Repeat("ü", ExcerptLimit+10)
	got := Excerpt(long)
	require.Equal(t, ExcerptLimit, len([]rune(got)))
	require.True(t, strings.HasPrefix(long, got))
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "NO_JSON_FOUND", (&Error{Code: CodeNoJSONFound}).Error())
	require.Equal(t, "SCHEMA_VIOLATION at trip.days", (&Error{Code: CodeSchemaViolation, Path: "trip.days"}).Error())
	require.ErrorIs(t, &Error{Code: CodeMissingTripKey}, ErrMissingTripKey)
	require.NotErrorIs(t, &Error{Code: CodeMissingTripKey}, ErrSchemaViolation)
}
