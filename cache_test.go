package agencia

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func setupTestCache(t *testing.T) (*ContentStore, *PostCache) {
	t.Helper()
	s := setupTestContent(t)
	return s, NewPostCache(s, time.Minute)
}

func TestCacheListsDateDescending(t *testing.T) {
	s, cache := setupTestCache(t)

	for _, title := range []string{"Alpha", "Beta"} {
		if _, err := s.Create(PostInput{Title: title, Tags: []string{"Go"}, Content: "body"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}

	tags, err := cache.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"go"}) {
		t.Errorf("tags = %v, want lower-cased deduped [go]", tags)
	}
}

func TestCacheFilterByTagIsCaseInsensitive(t *testing.T) {
	s, cache := setupTestCache(t)

	if _, err := s.Create(PostInput{Title: "Tagged", Tags: []string{"Go"}, Content: "body"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create(PostInput{Title: "Untagged", Content: "body"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := cache.ListPosts("gO")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "tagged" {
		t.Errorf("filtered posts = %v", posts)
	}
}

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	s, cache := setupTestCache(t)

	if _, err := cache.ListPosts(""); err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if _, err := s.Create(PostInput{Title: "Fresh", Content: "body"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("cache should still serve the pre-create snapshot, got %d posts", len(posts))
	}

	cache.Invalidate()
	posts, err = cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("post missing after invalidation: %v", posts)
	}
}

func TestCacheGetPost(t *testing.T) {
	s, cache := setupTestCache(t)

	if _, err := s.Create(PostInput{Title: "Hello World", Content: "body"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	post, err := cache.GetPost("hello-world")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if post.Title != "Hello World" {
		t.Errorf("title = %q", post.Title)
	}
	if _, err := cache.GetPost("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing post = %v, want ErrNotFound", err)
	}
}
