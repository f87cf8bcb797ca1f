package agencia

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// tinyPNG carries a PNG signature padded past the minimum size. The
// dimension probe is best-effort, so the payload need not decode.
var tinyPNG = append([]byte{
	0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a,
}, bytes.Repeat([]byte{0}, 16)...)

func setupTestUploads(t *testing.T) *UploadStore {
	t.Helper()
	return NewUploadStore(t.TempDir(), "/uploads/blogs/images")
}

func TestSaveAndListUpload(t *testing.T) {
	u := setupTestUploads(t)

	img, err := u.Save(tinyPNG, "photo.PNG", "image/png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(img.Name, ".png") {
		t.Errorf("stored name %q should carry the lower-cased extension", img.Name)
	}
	if img.Name == "photo.png" {
		t.Errorf("stored name should be generated, not the original")
	}
	if img.URL != "/uploads/blogs/images/"+img.Name {
		t.Errorf("url = %q", img.URL)
	}
	if img.Size != int64(len(tinyPNG)) {
		t.Errorf("size = %d, want %d", img.Size, len(tinyPNG))
	}

	images, err := u.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(images) != 1 || images[0].Name != img.Name {
		t.Errorf("List = %v, want the saved image", images)
	}
}

func TestSaveRejectsDisallowedType(t *testing.T) {
	u := setupTestUploads(t)
	var ve *ValidationError
	if _, err := u.Save(tinyPNG, "doc.pdf", "application/pdf"); !errors.As(err, &ve) {
		t.Errorf("disallowed type error = %v, want ValidationError", err)
	}
}

func TestSaveSizeLimits(t *testing.T) {
	u := setupTestUploads(t)

	atLimit := make([]byte, maxUploadBytes)
	if _, err := u.Save(atLimit, "big.png", "image/png"); err != nil {
		t.Errorf("exactly 5MB should be accepted, got: %v", err)
	}

	overLimit := make([]byte, maxUploadBytes+1)
	var ve *ValidationError
	if _, err := u.Save(overLimit, "big.png", "image/png"); !errors.As(err, &ve) {
		t.Errorf("5MB+1 error = %v, want ValidationError", err)
	}

	if _, err := u.Save([]byte("tiny"), "tiny.png", "image/png"); !errors.As(err, &ve) {
		t.Errorf("undersized payload error = %v, want ValidationError", err)
	}
}

func TestSaveRejectsLongName(t *testing.T) {
	u := setupTestUploads(t)
	name := strings.Repeat("a", maxUploadNameLen-3) + ".png" // 101 chars
	var ve *ValidationError
	if _, err := u.Save(tinyPNG, name, "image/png"); !errors.As(err, &ve) {
		t.Errorf("over-long name error = %v, want ValidationError", err)
	}
}

func TestDeleteRejectsTraversalNames(t *testing.T) {
	u := setupTestUploads(t)

	bad := []string{
		"",
		"..",
		"../../etc/passwd",
		"a/b.png",
		`foo\bar.png`,
		"no-extension",
		"UPPER!.png",
	}
	var ve *ValidationError
	for _, name := range bad {
		if err := u.Delete(name); !errors.As(err, &ve) {
			t.Errorf("Delete(%q) = %v, want ValidationError", name, err)
		}
	}
}

func TestDeleteMissingImage(t *testing.T) {
	u := setupTestUploads(t)
	if err := u.Delete("0a1b2c3d-4e5f.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete of missing image = %v, want ErrNotFound", err)
	}
}

func TestDeleteStoredImage(t *testing.T) {
	u := setupTestUploads(t)

	img, err := u.Save(tinyPNG, "photo.png", "image/png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := u.Delete(img.Name); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	images, err := u.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("List after delete = %v, want empty", images)
	}
}
