package agencia

import (
	"reflect"
	"testing"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", []string{"blog"}, "https://example.com/blog"},
		{"https://example.com/", []string{"blog", "hello-world"}, "https://example.com/blog/hello-world"},
		{"http://localhost:3000", nil, "http://localhost:3000"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{" go ", "", "  ", "web"})
	if !reflect.DeepEqual(got, []string{"go", "web"}) {
		t.Errorf("FilterEmpty = %v", got)
	}
}

func TestSortPostsByDate(t *testing.T) {
	posts := []BlogPost{
		{Slug: "old", Date: "2024-01-15"},
		{Slug: "new", Date: "2026-08-01"},
		{Slug: "mid", Date: "2025-06-30"},
	}
	SortPostsByDate(posts)
	want := []string{"new", "mid", "old"}
	for i, w := range want {
		if posts[i].Slug != w {
			t.Errorf("posts[%d] = %s, want %s", i, posts[i].Slug, w)
		}
	}
}
