// Package pdftest reads back the PDFs gofpdf writes, for renderer tests.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode/utf16"
)

var pageObject = regexp.MustCompile(`/Type /Page[^s]`)

// PageCount returns the number of page objects in pdf
func PageCount(pdf []byte) int {
	return len(pageObject.FindAll(pdf, -1))
}

// Content returns every stream of pdf, inflated where it was compressed
func Content(t *testing.T, pdf []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	rest := pdf
	for {
		start := bytes.Index(rest, []byte("stream\n"))
		if start < 0 {
			break
		}
		rest = rest[start+len("stream\n"):]
		end := bytes.Index(rest, []byte("\nendstream"))
		if end < 0 {
			break
		}
		raw := rest[:end]
		rest = rest[end+len("\nendstream"):]

		r, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			out.Write(raw)
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			out.Write(raw)
			continue
		}
		out.Write(data)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// CoreText is the Tj operand gofpdf writes for cp1252 text
func CoreText(s string) []byte {
	return []byte("(" + escape(s) + ")Tj")
}

// UnicodeText is the Tj operand gofpdf writes for text in a TrueType font
func UnicodeText(s string) []byte {
	var b strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		b.WriteByte(byte(u >> 8))
		b.WriteByte(byte(u))
	}
	return []byte("(" + escape(b.String()) + ")Tj")
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", `\r`).Replace(s)
}

// FontPath returns the DejaVu TrueType font shipped with gofpdf in the module
// cache, skipping the test when it cannot be found.
func FontPath(t *testing.T) string {
	t.Helper()
	var roots []string
	if dir := os.Getenv("GOMODCACHE"); dir != "" {
		roots = append(roots, dir)
	}
	if dir := os.Getenv("GOPATH"); dir != "" {
		for _, p := range filepath.SplitList(dir) {
			roots = append(roots, filepath.Join(p, "pkg", "mod"))
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, "go", "pkg", "mod"))
	}

	for _, root := range roots {
		matches, _ := filepath.Glob(filepath.Join(root, "github.com", "jung-kurt", "gofpdf@*", "font", "DejaVuSansCondensed.ttf"))
		if len(matches) > 0 {
			return matches[0]
		}
	}
	t.Skip("DejaVuSansCondensed.ttf from gofpdf not found in the module cache")
	return ""
}
