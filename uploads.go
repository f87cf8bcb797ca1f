package agencia

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	maxUploadBytes   = 5 << 20 // 5MB
	maxUploadNameLen = 100
	minUploadBytes   = 10
)

// allowedUploadTypes is the declared-MIME allow-list for uploads.
var allowedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

var (
	imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|gif)$`)

	// uploadNamePattern is the sole path-traversal defense for deletes:
	// hex-like characters and hyphens, then a plain alphabetic extension.
	uploadNamePattern = regexp.MustCompile(`(?i)^[a-f0-9-]+\.[a-z]+$`)
)

// UploadStore is the file-backed store of uploaded images, independent
// of the content store. Save relies on collision-resistant generated
// names rather than existence checks, so concurrent saves never race.
type UploadStore struct {
	dir       string
	urlPrefix string
}

// NewUploadStore returns a store rooted at dir. Files are served under
// urlPrefix; the directory is created lazily on first use.
func NewUploadStore(dir, urlPrefix string) *UploadStore {
	return &UploadStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// List enumerates stored images sorted by modification time, most
// recent first. A missing upload directory is created and yields an
// empty list, not an error.
func (u *UploadStore) List() ([]UploadedImage, error) {
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	entries, err := os.ReadDir(u.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	type stamped struct {
		img UploadedImage
		mod time.Time
	}
	var images []stamped
	for _, entry := range entries {
		if entry.IsDir() || !imageExtPattern.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", entry.Name(), err)
		}
		images = append(images, stamped{
			img: UploadedImage{
				Name:         entry.Name(),
				URL:          u.urlFor(entry.Name()),
				Path:         filepath.Join(u.dir, entry.Name()),
				Size:         info.Size(),
				LastModified: info.ModTime().UTC().Format(time.RFC3339),
			},
			mod: info.ModTime(),
		})
	}
	sort.Slice(images, func(i, j int) bool { return images[i].mod.After(images[j].mod) })

	out := make([]UploadedImage, len(images))
	for i, s := range images {
		out[i] = s.img
	}
	return out, nil
}

// Save validates and stores an uploaded image under a generated unique
// name that preserves the original extension, lower-cased. All
// validation happens before any write. The unique name is the sole
// collision-avoidance mechanism; no existence check is performed.
func (u *UploadStore) Save(data []byte, originalName, declaredType string) (*UploadedImage, error) {
	if _, ok := allowedUploadTypes[strings.ToLower(declaredType)]; !ok {
		return nil, newValidationError("file type not allowed; use JPEG, PNG, WebP or GIF")
	}
	if len(data) > maxUploadBytes {
		return nil, newValidationError("image too large; the limit is 5MB")
	}
	if len(originalName) > maxUploadNameLen {
		return nil, newValidationError("file name too long")
	}
	if len(data) < minUploadBytes {
		return nil, newValidationError("invalid image data")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	filePath := filepath.Join(u.dir, name)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	img := &UploadedImage{
		Name:         name,
		URL:          u.urlFor(name),
		Path:         filePath,
		Size:         int64(len(data)),
		LastModified: time.Now().UTC().Format(time.RFC3339),
	}
	// Best-effort dimension probe; an undecodable payload stays 0x0.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img, nil
}

// Delete removes a stored image by name. The name is validated before
// any filesystem access: anything containing a path separator or parent
// segment, or not matching the generated-name pattern, is rejected.
// A validated name with no file behind it yields ErrNotFound.
func (u *UploadStore) Delete(name string) error {
	if name == "" ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) ||
		!uploadNamePattern.MatchString(name) {
		return newValidationError("invalid file name")
	}
	filePath := filepath.Join(u.dir, name)
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("image %q: %w", name, ErrNotFound)
	} else if err != nil {
		return fmt.Errorf("stat image %q: %w", name, err)
	}
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("delete image %q: %w", name, err)
	}
	return nil
}

func (u *UploadStore) urlFor(name string) string {
	return u.urlPrefix + "/" + path.Base(name)
}
