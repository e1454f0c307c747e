// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docify rewrites source files with AI-generated documentation
// comments, archiving the original next to the rewritten file.
package docify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-advisor/internal/ai"
)

// archiveSuffix is appended to the stem of the original file when it is
// archived, e.g. main.py → main_doc_archive.py.
const archiveSuffix = "_doc_archive"

// docPromptTmpl asks the backend to rewrite a source file with clear,
// essential documentation comments and no surrounding formatting.
var docPromptTmpl = template.Must(template.New("docify").Parse(`As a highly skilled documentation specialist, your assignment is to meticulously review the following source file. Analyze its functions, types, and structure and add clear, concise, and essential documentation comments in the idiomatic style of the file's language. Each comment should describe the purpose of the element, covering parameters, return values, and error conditions where relevant.

Provide the revised code in plain text, without any additional symbols, formatting, or delimiters. Do not wrap the code in backticks.

Here is the code:
{{.Code}}
`))

// BatchSummary holds counts from a directory documentation run.
type BatchSummary struct {
	Documented int
	Failed     int
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Documented + s.Failed
}

// DocumentFile rewrites one source file with documentation via the AI
// backend. The original is renamed to <stem>_doc_archive<ext> and the
// rewritten content is written under the original name.
func DocumentFile(ctx context.Context, backend ai.Backend, path string, w io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	prompt, err := renderDocPrompt(string(content))
	if err != nil {
		return fmt.Errorf("rendering prompt: %w", err)
	}

	raw, err := backend.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("invoking backend for %s: %w", path, err)
	}
	updated := ai.StripCodeFences(raw)

	archivePath := ArchivePath(path)
	if err := os.Rename(path, archivePath); err != nil {
		return fmt.Errorf("archiving %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(updated+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(w, "documented %s (original archived to %s)\n", path, archivePath)
	return nil
}

// DocumentDir documents every source file with the given extension under
// dir, skipping files that are themselves archives. Per-file failures are
// reported and counted but do not abort the walk.
func DocumentDir(ctx context.Context, backend ai.Backend, dir, ext string, w io.Writer) (BatchSummary, error) {
	files, err := collectSources(dir, ext)
	if err != nil {
		return BatchSummary{}, err
	}

	fmt.Fprintf(w, "found %d source file(s)\n", len(files))

	var summary BatchSummary
	for _, path := range files {
		if err := DocumentFile(ctx, backend, path, w); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		summary.Documented++
	}

	return summary, nil
}

// DeleteArchives removes every archive file under dir and returns the
// number deleted. Per-file failures are reported but do not abort.
func DeleteArchives(dir string, w io.Writer) (int, error) {
	deleted := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isArchive(path) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			return nil
		}
		fmt.Fprintf(w, "deleted %s\n", path)
		deleted++
		return nil
	})
	return deleted, err
}

// ArchivePath returns the archive name for a source path:
// dir/stem_doc_archive.ext.
func ArchivePath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + archiveSuffix + ext
}

// isArchive reports whether the path stem ends with the archive suffix.
func isArchive(path string) bool {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return strings.HasSuffix(stem, archiveSuffix)
}

// collectSources walks dir and returns paths with the wanted extension,
// excluding archives.
func collectSources(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ext || isArchive(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

// renderDocPrompt executes the documentation prompt template.
func renderDocPrompt(code string) (string, error) {
	var buf bytes.Buffer
	if err := docPromptTmpl.Execute(&buf, struct{ Code string }{Code: code}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
