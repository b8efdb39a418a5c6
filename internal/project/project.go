// Package project lists the files of a user project for the editor tree
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog/log"
)

// Entry is one file or directory of the tree
type Entry struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Dir   bool   `json:"dir"`
	Depth int    `json:"depth"`
	// Status is the short git status code, empty when clean or untracked by git
	Status string `json:"status,omitempty"`
}

// Tree is a listing of a project root
type Tree struct {
	Root    string  `json:"root"`
	IsRepo  bool    `json:"is_repo"`
	Branch  string  `json:"branch,omitempty"`
	Commit  string  `json:"commit,omitempty"`
	Entries []Entry `json:"entries"`
}

// Load walks root and returns its entries in lexical order. Hidden
// directories and directories named in exclude are skipped. When root is
// inside a git repository every entry carries its worktree status.
func Load(root string, exclude []string) (*Tree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", abs)
	}

	tree := &Tree{Root: filepath.ToSlash(abs), Entries: make([]Entry, 0)}
	skip := skipSet(exclude)

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == abs {
			return nil
		}

		name := d.Name()
		if d.IsDir() && (strings.HasPrefix(name, ".") || skip[name]) {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(abs, path)
		rel = filepath.ToSlash(rel)
		tree.Entries = append(tree.Entries, Entry{
			Path:  rel,
			Name:  name,
			Dir:   d.IsDir(),
			Depth: strings.Count(rel, "/"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project: %w", err)
	}

	if err := tree.applyGitStatus(abs); err != nil {
		log.Warn().Err(err).Str("root", abs).Msg("git status unavailable")
	}

	return tree, nil
}

func (t *Tree) applyGitStatus(abs string) error {
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open repo: %w", err)
	}
	t.IsRepo = true

	if head, err := repo.Head(); err == nil {
		t.Branch = head.Name().Short()
		t.Commit = head.Hash().String()
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}

	prefix, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return err
	}
	prefix = filepath.ToSlash(prefix)

	for i := range t.Entries {
		e := &t.Entries[i]
		if e.Dir {
			continue
		}
		key := e.Path
		if prefix != "." {
			key = prefix + "/" + e.Path
		}
		if st, ok := status[key]; ok {
			e.Status = statusCode(st)
		}
	}
	return nil
}

func statusCode(st *git.FileStatus) string {
	if st.Staging != git.Unmodified && st.Staging != git.Untracked {
		return string(st.Staging)
	}
	if st.Worktree == git.Unmodified {
		return ""
	}
	return string(st.Worktree)
}

// Stage adds a file of the project to the git index. path may be absolute
// or relative to the current directory.
func Stage(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return err
	}

	if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
		return fmt.Errorf("failed to stage %s: %w", rel, err)
	}

	log.Debug().Str("file", rel).Msg("staged test file")
	return nil
}

// Files returns the paths of the tree's files whose base name matches one of patterns
func (t *Tree) Files(patterns ...string) []string {
	files := make([]string, 0)
	for _, e := range t.Entries {
		if e.Dir {
			continue
		}
		for _, p := range patterns {
			if ok, _ := filepath.Match(p, e.Name); ok {
				files = append(files, e.Path)
				break
			}
		}
	}
	sort.Strings(files)
	return files
}

func skipSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
