// Package textfile decides which local files count as plain text and reads
// them into a string.
package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrUnsupportedType is returned for files that are not plain text.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrUndecodable is returned when file content is not valid text.
	ErrUndecodable = errors.New("file content is not valid text")
)

// Extensions accepted regardless of the detected MIME type.
var Extensions = []string{".txt", ".md"}

// Info describes a candidate input file.
type Info struct {
	Path     string
	Name     string
	MIMEType string
	Size     int64
}

// Accept reports whether a file with the given name and MIME type is
// accepted as plain text.
func Accept(name, mimeType string) bool {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "text/") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Inspect stats path and sniffs its MIME type.
func Inspect(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	if st.IsDir() {
		return Info{}, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to detect file type: %w", err)
	}
	return Info{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: mt.String(),
		Size:     st.Size(),
	}, nil
}

// Check inspects path and returns ErrUnsupportedType when it is not
// accepted.
func Check(path string) (Info, error) {
	info, err := Inspect(path)
	if err != nil {
		return info, err
	}
	if !Accept(info.Name, info.MIMEType) {
		return info, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, info.Name, info.MIMEType)
	}
	return info, nil
}

// Read loads path fully and decodes it as text.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(data)
}

// Decode converts raw file bytes to a string. A UTF-8 or UTF-16 byte order
// mark selects the encoding; without one the content must be UTF-8.
func Decode(data []byte) (string, error) {
	dec := unicode.BOMOverride(transform.Nop)
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrUndecodable)
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return "", fmt.Errorf("%w: contains NUL bytes", ErrUndecodable)
	}
	return string(out), nil
}
