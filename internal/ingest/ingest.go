// Package ingest loads manuscripts and reference documents from disk.
package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"writeassist/internal/domain"
)

// Load reads a .txt, .md or .pdf file into a Document. Text is NFC
// normalized so offsets count composed characters.
func Load(path string) (domain.Document, error) {
	var text string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return domain.Document{}, fmt.Errorf("read file: %w", err)
		}
		text = string(raw)
	case ".pdf":
		var err error
		text, err = parsePDF(path)
		if err != nil {
			return domain.Document{}, err
		}
		text = normalizeWhitespace(text)
	default:
		return domain.Document{}, fmt.Errorf("unsupported file type: %q", ext)
	}
	return domain.Document{
		ID:      hashString(path),
		Path:    path,
		Content: norm.NFC.String(text),
	}, nil
}

// LoadAll expands globs and loads every supported file once, in path order.
// A pattern that matches nothing is treated as a literal path.
func LoadAll(patterns []string) ([]domain.Document, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !Supported(m) {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)

	docs := make([]domain.Document, 0, len(paths))
	for _, p := range paths {
		d, err := Load(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		docs = append(docs, d)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .txt, .md or .pdf documents found")
	}
	return docs, nil
}

// Supported reports whether Load understands the file's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".pdf":
		return true
	}
	return false
}

func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
