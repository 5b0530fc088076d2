package format

import "testing"

func TestEscapeMDV2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"a_b*c", `a\_b\*c`},
		{"1. пункт (важно)", `1\. пункт \(важно\)`},
		{"x>y|z", `x\>y\|z`},
		{"", ""},
	}
	for _, tc := range cases {
		if got := EscapeMDV2(tc.in); got != tc.want {
			t.Errorf("EscapeMDV2(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
