package agencia

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// BuildURL joins path segments onto a base URL.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice and
// trims the rest.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SortPostsByDate orders posts most recent first. Dates are ISO
// calendar dates, so the lexical comparison is the chronological one.
// The index's own on-disk order is insertion order; date order is
// applied explicitly wherever posts are displayed.
func SortPostsByDate(posts []BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}
