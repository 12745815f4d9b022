package safe

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxFileSize is the default maximum size of a header file (8MB).
const DefaultMaxFileSize = 8 << 20

// ReadOptions configures the validations done before a file is read.
type ReadOptions struct {
	// MaxSize is the maximum allowed file size in bytes. Zero means DefaultMaxFileSize.
	MaxSize int64
	// RejectSymlinks refuses symlinked paths. Header trees are often
	// symlinked into build directories, so they are followed by default.
	RejectSymlinks bool
}

// IsRegularFile reports whether path exists and resolves to a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// OpenFile opens a file for reading after validating it is a regular file
// within the size limit.
func OpenFile(path string, opts *ReadOptions) (*os.File, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}
	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}

	cleanPath := filepath.Clean(path)

	// Check file info without following symlinks.
	info, err := os.Lstat(cleanPath)
	if err != nil {
		return nil, err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if opts.RejectSymlinks {
			return nil, fmt.Errorf("file %q is a symlink, which is not allowed", path)
		}
		info, err = os.Stat(cleanPath)
		if err != nil {
			return nil, err
		}
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("path %q is not a regular file", path)
	}

	if info.Size() > maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum allowed size of %d bytes", path, maxSize)
	}

	// #nosec G304 - path validated above.
	return os.Open(cleanPath)
}

// DecodeText reads all of r as UTF-8 text, dropping a leading byte order mark
// and normalizing CRLF line endings to LF.
func DecodeText(r io.Reader) (string, error) {
	tr := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, tr))
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// ReadLines reads a text file and returns its lines. Each line keeps its
// terminating newline; a missing newline on the last line is added.
func ReadLines(path string, opts *ReadOptions, logger zerolog.Logger) ([]string, error) {
	f, err := OpenFile(path, opts)
	if err != nil {
		return nil, err
	}
	defer Close(f, logger, "failed to close "+path)

	text, err := DecodeText(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return SplitLines(text), nil
}

// SplitLines splits text after every newline. A trailing fragment without a
// newline becomes a final line with one appended.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + "\n"
	}
	return lines
}

// Close closes gracefully a Closer interface, handling and logging the error.
func Close(c io.Closer, logger zerolog.Logger, msg string) {
	if err := c.Close(); err != nil {
		logger.Error().Err(err).Msg(msg)
	}
}
