// Package notes reads journal notes from a directory of markdown files.
package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Note identifies a note file. ID is the slash-separated path relative to the root.
type Note struct {
	ID      string
	Name    string
	ModTime time.Time
}

// DirSource lists and reads notes under Root. Folder restricts the walk to a
// subdirectory and Tag keeps only notes carrying that tag.
type DirSource struct {
	Root   string
	Folder string
	Tag    string
}

func NewDirSource(root, folder, tag string) *DirSource {
	return &DirSource{Root: root, Folder: folder, Tag: strings.TrimPrefix(tag, "#")}
}

// ListModifiedSince returns notes modified after since, oldest first.
func (s *DirSource) ListModifiedSince(ctx context.Context, since time.Time) ([]Note, error) {
	base := s.Root
	if s.Folder != "" {
		base = filepath.Join(s.Root, filepath.FromSlash(s.Folder))
	}
	if _, err := os.Stat(base); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("notes directory %s does not exist", base)
		}
		return nil, err
	}

	var out []Note
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Only the root itself failing aborts the listing.
			if path == base {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != base && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !info.ModTime().After(since) {
			return nil
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		// A note whose tags cannot be read is still listed so that the
		// failure surfaces when it is read.
		if s.Tag != "" {
			if ok, err := s.hasTag(path); err == nil && !ok {
				return nil
			}
		}
		out = append(out, Note{
			ID:      filepath.ToSlash(rel),
			Name:    strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk notes: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].ModTime.Before(out[j].ModTime)
	})
	return out, nil
}

// ReadNote parses the note with the given ID.
func (s *DirSource) ReadNote(ctx context.Context, id string) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	path, err := s.resolve(id)
	if err != nil {
		return Content{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read note %s: %w", id, err)
	}
	return Parse(raw), nil
}

func (s *DirSource) resolve(id string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(id))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("note id %q escapes the notes directory", id)
	}
	return filepath.Join(s.Root, clean), nil
}

func (s *DirSource) hasTag(path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	fm, body := splitFrontMatter(raw)
	for _, t := range fm.Tags {
		if strings.EqualFold(strings.TrimPrefix(t, "#"), s.Tag) {
			return true, nil
		}
	}
	for _, t := range inlineTags(string(body)) {
		if strings.EqualFold(t, s.Tag) {
			return true, nil
		}
	}
	return false, nil
}

type frontMatter struct {
	Tags []string `yaml:"tags"`
}

// splitFrontMatter separates a leading YAML block delimited by "---" lines.
// Invalid YAML is treated as part of the body.
func splitFrontMatter(raw []byte) (frontMatter, []byte) {
	var fm frontMatter
	src := bytes.TrimPrefix(raw, []byte("\ufeff"))
	if !bytes.HasPrefix(src, []byte("---\n")) && !bytes.HasPrefix(src, []byte("---\r\n")) {
		return fm, src
	}
	rest := src[bytes.IndexByte(src, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return fm, src
	}
	block := rest[:end]
	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return frontMatter{}, src
	}
	return fm, body
}

func inlineTags(s string) []string {
	var tags []string
	for _, f := range strings.Fields(s) {
		if len(f) > 1 && f[0] == '#' && f[1] != '#' {
			tags = append(tags, strings.TrimRight(f[1:], ".,;:!?)"))
		}
	}
	return tags
}
