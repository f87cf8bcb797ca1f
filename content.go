package agencia

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	indexFileName = "blog-metadata.json"
	postsSubdir   = "blogs"
	postExt       = ".mdx"
)

// DefaultPostImage is used when a created post carries no image reference.
const DefaultPostImage = "/images/blog/default.jpg"

// ContentStore is the file-backed store of blog posts. It owns the
// metadata index (blog-metadata.json) and the per-post documents
// (blogs/<slug>.mdx) and keeps the two consistent: every successful
// operation leaves each index entry with a readable document and each
// document with a matching index entry. A crash between the two writes
// can leave an orphan document, never a dangling index entry; Reindex
// repairs orphans.
//
// The mutex serializes every read-modify-write of the index. Without
// it, two concurrent writers would clobber each other's index update.
type ContentStore struct {
	mu        sync.Mutex
	indexPath string
	postsDir  string
}

// metadataIndex is the persisted shape of the index file.
type metadataIndex struct {
	Posts []BlogPost `json:"posts"`
}

// NewContentStore opens the content directory, creating it and the
// documents subdirectory if needed.
func NewContentStore(dir string) (*ContentStore, error) {
	postsDir := filepath.Join(dir, postsSubdir)
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create content dir: %w", err)
	}
	return &ContentStore{
		indexPath: filepath.Join(dir, indexFileName),
		postsDir:  postsDir,
	}, nil
}

// ListAll returns the metadata index in its persisted order (insertion
// order, newest first). Callers that need date order sort explicitly.
func (s *ContentStore) ListAll() ([]BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIndex()
}

// GetWithContent returns a post's metadata and document body. A slug
// absent from the index yields ErrNotFound; an index entry whose
// document is missing yields ErrInconsistent.
func (s *ContentStore) GetWithContent(slug string) (*BlogPostWithContent, error) {
	s.mu.Lock()
	posts, err := s.readIndex()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	meta, ok := findPost(posts, slug)
	if !ok {
		return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
	}
	raw, err := os.ReadFile(s.documentPath(slug))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("post %q is indexed but its document is missing: %w", slug, ErrInconsistent)
	}
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", slug, err)
	}
	return &BlogPostWithContent{
		BlogPost: meta,
		Content:  StripFrontmatter(string(raw)),
	}, nil
}

// Create generates a slug from the input title, stamps today's date and
// persists the new post. The document is written before the index so a
// crash between the two leaves an orphan document, never an index entry
// pointing at nothing. A colliding slug is rejected with ErrSlugExists.
func (s *ContentStore) Create(input PostInput) (*BlogPost, error) {
	slug := GenerateSlug(input.Title)
	if slug == "" {
		return nil, newValidationError("title yields an empty slug")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	if _, ok := findPost(posts, slug); ok {
		return nil, fmt.Errorf("post %q: %w", slug, ErrSlugExists)
	}

	image := input.Image
	if image == "" {
		image = DefaultPostImage
	}
	post := BlogPost{
		Slug:        slug,
		Title:       input.Title,
		Description: input.Description,
		Date:        time.Now().Format("2006-01-02"),
		Tags:        input.Tags,
		ReadTime:    input.ReadTime,
		Image:       image,
	}

	if err := s.writeDocument(post, input.Content); err != nil {
		return nil, err
	}
	posts = append([]BlogPost{post}, posts...)
	if err := s.writeIndex(posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update overwrites every writable field of an existing post. Slug and
// the original creation date are preserved. Write order matches Create:
// document first, index second.
func (s *ContentStore) Update(slug string, input PostInput) (*BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range posts {
		if posts[i].Slug == slug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
	}

	updated := BlogPost{
		Slug:        slug,
		Title:       input.Title,
		Description: input.Description,
		Date:        posts[idx].Date,
		Tags:        input.Tags,
		ReadTime:    input.ReadTime,
		Image:       input.Image,
	}

	if err := s.writeDocument(updated, input.Content); err != nil {
		return nil, err
	}
	posts[idx] = updated
	if err := s.writeIndex(posts); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a post from the index and deletes its document.
// Deleting an absent slug is a successful no-op.
func (s *ContentStore) Delete(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readIndex()
	if err != nil {
		return err
	}
	kept := posts[:0]
	for _, p := range posts {
		if p.Slug != slug {
			kept = append(kept, p)
		}
	}
	if err := s.writeIndex(kept); err != nil {
		return err
	}
	if err := os.Remove(s.documentPath(slug)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete document %q: %w", slug, err)
	}
	return nil
}

// Reindex rebuilds the metadata index by scanning the documents
// directory and parsing each document's frontmatter. Documents without
// a header block are skipped. Returns the number of indexed posts.
func (s *ContentStore) Reindex() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.postsDir)
	if err != nil {
		return 0, fmt.Errorf("scan documents dir: %w", err)
	}
	var posts []BlogPost
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), postExt) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.postsDir, entry.Name()))
		if err != nil {
			return 0, fmt.Errorf("read document %q: %w", entry.Name(), err)
		}
		fields := ParseFrontmatter(string(raw))
		if len(fields) == 0 {
			continue
		}
		posts = append(posts, BlogPost{
			Slug:        strings.TrimSuffix(entry.Name(), postExt),
			Title:       fields["title"].Scalar(),
			Description: fields["description"].Scalar(),
			Date:        fields["date"].Scalar(),
			Tags:        fieldStrings(fields["tags"]),
			ReadTime:    fields["readTime"].Scalar(),
			Image:       fields["image"].Scalar(),
		})
	}
	if err := s.writeIndex(posts); err != nil {
		return 0, err
	}
	return len(posts), nil
}

// fieldStrings coerces a frontmatter value to a string slice, keeping a
// non-empty scalar fallback as a single-element slice.
func fieldStrings(v Value) []string {
	if v.IsList() {
		return v.List()
	}
	if s := v.Scalar(); s != "" {
		return []string{s}
	}
	return nil
}

func findPost(posts []BlogPost, slug string) (BlogPost, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return BlogPost{}, false
}

func (s *ContentStore) documentPath(slug string) string {
	return filepath.Join(s.postsDir, slug+postExt)
}

// readIndex loads the index file. A missing file reads as an empty
// repository so a fresh deployment works without seeding.
func (s *ContentStore) readIndex() ([]BlogPost, error) {
	data, err := os.ReadFile(s.indexPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata index: %w", err)
	}
	var idx metadataIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decode metadata index: %w", err)
	}
	return idx.Posts, nil
}

// writeIndex persists the full index. The index is always rewritten
// whole; there is no incremental persistence.
func (s *ContentStore) writeIndex(posts []BlogPost) error {
	if posts == nil {
		posts = []BlogPost{}
	}
	data, err := json.MarshalIndent(metadataIndex{Posts: posts}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata index: %w", err)
	}
	if err := os.WriteFile(s.indexPath, data, 0o644); err != nil {
		return fmt.Errorf("write metadata index: %w", err)
	}
	return nil
}

// writeDocument renders the frontmatter header and body to the post's
// document file.
func (s *ContentStore) writeDocument(p BlogPost, content string) error {
	fields := []Field{
		{Key: "title", Value: StringValue(p.Title)},
		{Key: "description", Value: StringValue(p.Description)},
		{Key: "date", Value: StringValue(p.Date)},
		{Key: "tags", Value: ListValue(p.Tags...)},
		{Key: "readTime", Value: StringValue(p.ReadTime)},
		{Key: "image", Value: StringValue(p.Image)},
	}
	doc := RenderFrontmatter(fields, content)
	if err := os.WriteFile(s.documentPath(p.Slug), []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write document %q: %w", p.Slug, err)
	}
	return nil
}
