package agencia

// BlogPost is the metadata record kept in the index for every post.
// Content lives in a separate document on disk, keyed by Slug.
type BlogPost struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	ReadTime    string   `json:"readTime"`
	Image       string   `json:"image"`
}

// BlogPostWithContent is a post's metadata plus its document body.
type BlogPostWithContent struct {
	BlogPost
	Content string `json:"content"`
}

// PostInput carries the writable fields of a post. Slug and Date are
// owned by the content store and never taken from input.
type PostInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	ReadTime    string   `json:"readTime"`
	Image       string   `json:"image"`
}

// UploadedImage describes one file in the upload store. Size and
// LastModified are read from storage metadata, not cached. Width and
// Height come from a best-effort decode and may be zero.
type UploadedImage struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}
