// Package media stores uploaded logo images. Every accepted upload is
// normalized to WebP on disk regardless of the source format.
package media

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/bitechdev/DemoManage/pkg/apperr"
	"github.com/bitechdev/DemoManage/pkg/logger"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	maxUploadBytes = 5 << 20
	maxDimension   = 1024
	webpQuality    = 85
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".bmp":  {},
	".tiff": {},
	".tif":  {},
}

// LogoStore writes converted logos under root/subdir and hands back
// their public URL paths.
type LogoStore struct {
	root   string
	subdir string
}

// NewLogoStore creates the store and its directory tree.
func NewLogoStore(root, subdir string) (*LogoStore, error) {
	dir := filepath.Join(root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir %s: %w", dir, err)
	}
	return &LogoStore{root: root, subdir: subdir}, nil
}

// Upload validates, converts and stores one logo, returning its URL
// path. The stored name embeds the owning demo's ID so orphan cleanup
// can match files back to rows.
func (s *LogoStore) Upload(demoID, filename string, file io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", apperr.FileValidation(fmt.Sprintf("File type %s is not allowed.", ext))
	}

	// Read one byte past the cap to distinguish at-limit from over it.
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return "", apperr.Internal("Failed to read uploaded file", err)
	}
	if len(data) > maxUploadBytes {
		return "", apperr.FileValidation("File size exceeds the 5 MB limit.")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", apperr.FileValidation("File is not a valid image.")
	}

	img = shrinkToFit(img, maxDimension)

	var encoded bytes.Buffer
	if err := webp.Encode(&encoded, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", apperr.Internal("Failed to encode logo", err)
	}

	name := fmt.Sprintf("demo_%s_%s.webp", demoID, uuid.NewString()[:8])
	path := filepath.Join(s.root, s.subdir, name)
	if err := os.WriteFile(path, encoded.Bytes(), 0o644); err != nil {
		return "", apperr.Internal("Failed to store logo", err)
	}

	return "/media/" + s.subdir + "/" + name, nil
}

// Delete removes a stored logo by its URL path. A missing file is not
// an error; the reference was already stale.
func (s *LogoStore) Delete(url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, s.subdir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove logo %s: %w", name, err)
	}
	return nil
}

// CleanupOrphans deletes stored files whose URL is absent from the set
// of active references, and returns how many were removed.
func (s *LogoStore) CleanupOrphans(activeURLs []string) (int, error) {
	active := make(map[string]struct{}, len(activeURLs))
	for _, url := range activeURLs {
		active[filepath.Base(url)] = struct{}{}
	}

	dir := filepath.Join(s.root, s.subdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read media dir %s: %w", dir, err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := active[entry.Name()]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logger.Warn("cleanup: remove %s failed: %v", entry.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Dir returns the on-disk directory logos are stored in. The server
// binary mounts it for static serving.
func (s *LogoStore) Dir() string {
	return filepath.Join(s.root, s.subdir)
}

// shrinkToFit scales img down so both dimensions fit within max,
// preserving aspect ratio. Images already within bounds pass through
// untouched; nothing is ever upscaled.
func shrinkToFit(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return img
	}

	scale := float64(max) / float64(w)
	if h > w {
		scale = float64(max) / float64(h)
	}
	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
