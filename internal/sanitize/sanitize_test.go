package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestString runs a set of inputs through the sanitizer and compares the results.
func TestString(t *testing.T) {
	cases := map[string]string{
		"":                                    "",
		"Al":                                  "Al",
		"a@x.com":                             "a@x.com",
		"Rudi Völler":                         "Rudi Völler",
		"<b>Hi</b>":                           "Hi",
		"<script>alert('xss')</script>Bob":    "Bob",
		`<img src=x onerror="alert(1)">Eve`:   "Eve",
		`<a href="javascript:alert(1)">x</a>`: "x",
		"O'Brien":                             "O'Brien",
		"o'brien@x.com":                       "o'brien@x.com",
		"tom&jerry@x.com":                     "tom&jerry@x.com",
		`Q&A "now"`:                           `Q&A "now"`,
		"a < b":                               "a &lt; b",
		"&lt;script&gt;":                      "&lt;script&gt;",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, String(input), "input: "+input)
	}
}

// TestStringPtr verifies that nil stays nil and that a value is sanitized.
func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(nil))
	input := "<i>Bye</i>"
	assert.Equal(t, "Bye", *StringPtr(&input))
	assert.Equal(t, "<i>Bye</i>", input, "the input must not be modified")
}
