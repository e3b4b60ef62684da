package scanner

import (
	"net/http"
	"path/filepath"

	"vakta/classify"
	"vakta/config"
	"vakta/entropy"

	"github.com/h2non/filetype"
)

const (
	// contentReadLimit bounds how much of a file the text techniques see.
	contentReadLimit = 100 * 1024
	// prefixReadLimit is the heuristic/header inspection window.
	prefixReadLimit = 64 * 1024
)

// FileContext carries one file through a scan. Content, entropy and mime
// type load lazily and are cached, so techniques can ask for the same
// bytes without re-reading. A FileContext belongs to a single scan and is
// not safe for concurrent use.
type FileContext struct {
	path     string
	name     string
	size     int64
	category classify.Category
	cfg      *config.Config

	contentLoaded bool
	content       []byte
	contentErr    error

	entropyLoaded bool
	entropyVal    float64
	entropyErr    error

	mimeLoaded bool
	mime       string
}

func newFileContext(path string, size int64, category classify.Category, cfg *config.Config) *FileContext {
	return &FileContext{
		path:     path,
		name:     filepath.Base(path),
		size:     size,
		category: category,
		cfg:      cfg,
	}
}

func (fc *FileContext) Path() string                { return fc.path }
func (fc *FileContext) Name() string                { return fc.name }
func (fc *FileContext) Size() int64                 { return fc.size }
func (fc *FileContext) Category() classify.Category { return fc.category }

// Content returns up to the first 100 KiB of the file. Larger files are
// truncated, never skipped; header and text techniques only ever need
// the leading window.
func (fc *FileContext) Content() ([]byte, error) {
	if fc.contentLoaded {
		return fc.content, fc.contentErr
	}
	fc.contentLoaded = true

	mode := "auto"
	mmapMin := int64(128 * 1024)
	chunk := 256 * 1024
	if fc.cfg != nil {
		if fc.cfg.ContentReadMode != "" {
			mode = fc.cfg.ContentReadMode
		}
		if fc.cfg.MmapMinSize > 0 {
			mmapMin = fc.cfg.MmapMinSize
		}
		if fc.cfg.StreamChunkSize > 0 {
			chunk = fc.cfg.StreamChunkSize
		}
	}
	fc.content, fc.contentErr = readFileContentWithMode(fc.path, contentReadLimit, mode, mmapMin, chunk)
	return fc.content, fc.contentErr
}

// Prefix returns the first 64 KiB of Content.
func (fc *FileContext) Prefix() ([]byte, error) {
	content, err := fc.Content()
	if err != nil {
		return nil, err
	}
	if len(content) > prefixReadLimit {
		return content[:prefixReadLimit], nil
	}
	return content, nil
}

// Entropy streams the whole file through the Shannon tally. Cached after
// the first call; failure is cached too so a vanished file is not
// re-stat'd by every technique.
func (fc *FileContext) Entropy() (float64, error) {
	if fc.entropyLoaded {
		return fc.entropyVal, fc.entropyErr
	}
	fc.entropyLoaded = true
	fc.entropyVal, fc.entropyErr = entropy.File(fc.path)
	return fc.entropyVal, fc.entropyErr
}

// MimeType sniffs the content magic. Magic-number detection first, byte
// heuristics as fallback so text files still get a sensible type.
func (fc *FileContext) MimeType() string {
	if fc.mimeLoaded {
		return fc.mime
	}
	fc.mimeLoaded = true

	content, err := fc.Content()
	if err != nil || len(content) == 0 {
		fc.mime = "application/octet-stream"
		return fc.mime
	}
	if kind, err := filetype.Match(content); err == nil && kind.MIME.Value != "" {
		fc.mime = kind.MIME.Value
		return fc.mime
	}
	fc.mime = http.DetectContentType(content)
	return fc.mime
}
