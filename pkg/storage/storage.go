// Package storage saves uploaded logos and documents and hands back the
// reference string that registration records keep.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"p9e.in/lms/pkg/apperr"
	"p9e.in/lms/pkg/logger"
)

type Category string

const (
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
)

// Backend stores objects by key. References are what clients see.
type Backend interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) (bool, error)
	KeyFromReference(ref string) (string, bool)
}

type Config struct {
	MaxImageSize    int64
	MaxDocumentSize int64
	ImageTypes      []string
	DocumentTypes   []string
}

// Stored describes a saved upload.
type Stored struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_filename"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
}

type Resolver struct {
	cfg     Config
	backend Backend
	now     func() time.Time
	tag     func() string
}

func NewResolver(cfg Config, backend Backend) *Resolver {
	return &Resolver{cfg: cfg, backend: backend, now: time.Now, tag: shortID}
}

func shortID() string { return uuid.NewString()[:8] }

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w\s.-]`)
	whitespace          = regexp.MustCompile(`\s+`)
	unsafeSegmentChars  = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// SanitizeFilename strips unsafe characters, replaces spaces with
// underscores and appends a timestamp and tag before the extension. The tag
// keeps same-second uploads of one name apart.
func SanitizeFilename(name string, now time.Time, tag string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	base = strings.Trim(base, ".")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%s_%s%s", base, now.Format("20060102_150405"), tag, strings.ToLower(ext))
}

// SanitizeSegment reduces a caller supplied folder name to a safe path
// segment.
func SanitizeSegment(s string) string {
	s = unsafeSegmentChars.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return "general"
	}
	return s
}

func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key")
	}
	return path.Clean(filepath.ToSlash(key)), nil
}

func (r *Resolver) limits(category Category) (int64, []string) {
	if category == CategoryImage {
		return r.cfg.MaxImageSize, r.cfg.ImageTypes
	}
	return r.cfg.MaxDocumentSize, r.cfg.DocumentTypes
}

// Save checks size and sniffed content type against the category limits
// and writes src under subfolder.
func (r *Resolver) Save(ctx context.Context, src io.Reader, filename string, category Category, subfolder string) (*Stored, error) {
	maxSize, allowed := r.limits(category)

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, apperr.Internal(err, "read upload")
	}
	if int64(len(data)) > maxSize {
		return nil, apperr.BadRequest("File size exceeds maximum allowed size of %.1f MB", float64(maxSize)/(1024*1024))
	}
	if len(data) == 0 {
		return nil, apperr.BadRequest("uploaded file is empty")
	}

	mt := mimetype.Detect(data)
	if !allowedType(mt, allowed) {
		return nil, apperr.BadRequest("File type %s not allowed. Allowed types: %s", mt.String(), strings.Join(allowed, ", "))
	}

	name := SanitizeFilename(filename, r.now(), r.tag())
	key, err := sanitizeKey(path.Join(subfolder, name))
	if err != nil {
		return nil, apperr.BadRequest("invalid upload path: %v", err)
	}

	contentType := strings.SplitN(mt.String(), ";", 2)[0]
	ref, err := r.backend.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, apperr.Internal(err, "store upload")
	}

	logger.Infof(ctx, "stored %s upload %s (%d bytes)", category, key, len(data))
	return &Stored{
		URL:          ref,
		Filename:     name,
		OriginalName: filename,
		ContentType:  contentType,
		Size:         int64(len(data)),
	}, nil
}

// Delete removes the object behind ref. It reports false when ref was not
// produced by this resolver's backend or the object no longer exists.
func (r *Resolver) Delete(ctx context.Context, ref string) (bool, error) {
	key, ok := r.backend.KeyFromReference(ref)
	if !ok {
		return false, nil
	}
	key, err := sanitizeKey(key)
	if err != nil {
		return false, nil
	}
	deleted, err := r.backend.Delete(ctx, key)
	if err != nil {
		return false, apperr.Internal(err, "delete upload")
	}
	if deleted {
		logger.Infof(ctx, "deleted upload %s", key)
	}
	return deleted, nil
}

func allowedType(mt *mimetype.MIME, allowed []string) bool {
	for _, a := range allowed {
		a = strings.TrimSpace(a)
		// image/jpg is not registered but is commonly configured
		if a == "image/jpg" {
			a = "image/jpeg"
		}
		if mt.Is(a) {
			return true
		}
	}
	return false
}
