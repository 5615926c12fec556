package input

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/readscore/internal/model"
)

// DefaultMaxSize is the default cap on input size (10 MiB).
const DefaultMaxSize int64 = 10 * 1024 * 1024

// Mode selects how a loaded file is interpreted.
type Mode string

const (
	// ModeAuto picks HTML for .html/.htm/.xhtml files or content that starts
	// with an HTML doctype, and plain text otherwise.
	ModeAuto Mode = "auto"

	// ModeText always treats the file as plain text.
	ModeText Mode = "text"

	// ModeHTML always extracts text from HTML markup.
	ModeHTML Mode = "html"
)

// ParseMode converts a format name into a Mode. The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeText:
		return ModeText, nil
	case ModeHTML:
		return ModeHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Source is a loaded document.
type Source struct {
	// Path is the location the document was read from.
	Path string

	// Text is the decoded, format-stripped document text.
	Text string

	// Format is model.FormatText or model.FormatHTML.
	Format string

	// Digest is the hex SHA3-256 of Text.
	Digest string

	// Size is the number of raw bytes read.
	Size int64
}

// Loader reads documents into memory.
type Loader struct {
	maxSize int64
	mode    Mode
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMaxSize caps the number of bytes read. Values <= 0 keep the default.
func WithMaxSize(size int64) LoaderOption {
	return func(l *Loader) {
		if size > 0 {
			l.maxSize = size
		}
	}
}

// WithMode sets how files are interpreted.
func WithMode(mode Mode) LoaderOption {
	return func(l *Loader) {
		l.mode = mode
	}
}

// WithLoaderLogger sets a custom logger for the loader.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader with DefaultMaxSize and ModeAuto.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		maxSize: DefaultMaxSize,
		mode:    ModeAuto,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file at path.
// Missing or unreadable files return an error wrapping ErrInputRead.
func (l *Loader) Load(ctx context.Context, path string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.LoadReader(ctx, path, f)
}

// Check reports whether path can be loaded without reading its contents:
// it must open, be a regular file and fit the size cap.
func (l *Loader) Check(path string) error {
	f, err := l.open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func (l *Loader) open(path string) (*os.File, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputRead, path)
	}
	if info.Size() > l.maxSize {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrInputTooLarge, path, info.Size(), l.maxSize)
	}
	return f, nil
}

// LoadReader reads a document from r. name is recorded as the Source path
// and used for extension-based format detection.
func (l *Loader) LoadReader(ctx context.Context, name string, r io.Reader) (*Source, error) {
	raw, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}
	if int64(len(raw)) > l.maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInputTooLarge, name, l.maxSize)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}

	format := model.FormatText
	if l.isHTML(name, text) {
		format = model.FormatHTML
		text, err = ExtractText(strings.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from %s: %w", name, err)
		}
	}

	l.logger.Debug("loaded document",
		"path", name,
		"bytes", len(raw),
		"format", format,
	)

	return &Source{
		Path:   name,
		Text:   text,
		Format: format,
		Digest: Digest(text),
		Size:   int64(len(raw)),
	}, nil
}

func (l *Loader) isHTML(name, text string) bool {
	switch l.mode {
	case ModeHTML:
		return true
	case ModeText:
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return looksLikeHTML(text)
}
