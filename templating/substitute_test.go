package templating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/nbplot/templating"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"root_path":         "/home/me",
		"i":                 "3",
		"input.pretty_name": "data.csv",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholder", "plain text", "plain text"},
		{"bare key", "cd $root_path", "cd /home/me"},
		{"braced key", "${root_path}/x", "/home/me/x"},
		{"dotted key", "$input.pretty_name!", "data.csv!"},
		{"braced dotted key", "[${input.pretty_name}]", "[data.csv]"},
		{"index next to text", "$i: a", "3: a"},
		{"unknown bare key", "$other and $i", "$other and 3"},
		{"unknown braced key", "${other}", "${other}"},
		{"greedy dotted key", "$input.pretty_name.csv", "$input.pretty_name.csv"},
		{"escaped dollar", "cost: $$5", "cost: $5"},
		{"escaped before key", "$$i", "$i"},
		{"lone dollar", "a $ b", "a $ b"},
		{"trailing dollar", "a$", "a$"},
		{"digit after dollar", "$1", "$1"},
		{"unclosed brace", "${i", "${i"},
		{"empty braces", "${}", "${}"},
		{"space in braces", "${ i }", "${ i }"},
		{"uppercase key kept", "$I", "$I"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(
				t, tt.want, templating.Substitute(tt.in, vars),
			)
		})
	}
}

func TestSubstitute_nil_vars(t *testing.T) {
	t.Parallel()

	assert.Equal(
		t,
		"$root_path $$",
		templating.Substitute("$root_path $$$$", nil),
	)
}
