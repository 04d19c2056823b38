package version

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct{ v, c, d, want string }{
		{"dev", "", "", "dev"},
		{"v1.2.0", "0123456789abcdef", "", "v1.2.0 (0123456789ab)"},
		{"v1.2.0", "abc", "2026-01-02", "v1.2.0 (abc) 2026-01-02"},
	}
	for _, c := range cases {
		if got := format(c.v, c.c, c.d); got != c.want {
			t.Errorf("format(%q,%q,%q) = %q, want %q", c.v, c.c, c.d, got, c.want)
		}
	}
}
