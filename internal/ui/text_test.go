package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"accusamus beatae", 0, "accusamus beatae"},
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"accusamus beatae", 8, "accus..."},
		{"accusamus", 3, "acc"},
		{"ébène", 4, "é..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestFit(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"150x150", 9, "150x150  "},
		{"loading", 7, "loading"},
		{"12000x12000", 9, "12000x..."},
	}
	for _, tc := range cases {
		if got := fit(tc.in, tc.width); got != tc.want {
			t.Fatalf("fit(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
