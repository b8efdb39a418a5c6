// Package resolver computes import paths between project files
package resolver

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Resolve returns the path of target relative to base using forward slashes,
// whatever the host separator. Relative targets are taken relative to base.
// The target does not have to exist. Windows drive-letter and UNC paths are
// resolved textually so the result does not depend on the host.
func Resolve(base, target string) (string, error) {
	base = normalize(base)
	target = normalize(target)

	if volume(base) != "" || volume(target) != "" {
		return resolveVolume(base, target)
	}

	base = filepath.FromSlash(base)
	target = filepath.FromSlash(target)

	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}
	if filepath.IsAbs(target) && !filepath.IsAbs(base) {
		abs, err := filepath.Abs(base)
		if err != nil {
			return "", fmt.Errorf("failed to resolve base %s: %w", base, err)
		}
		base = abs
	}

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s from %s: %w", target, base, err)
	}

	return normalize(filepath.ToSlash(rel)), nil
}

// Import returns the module specifier a test file in the project's test
// directory uses to reach target: "../" followed by the resolved path.
func Import(projectRoot, target string) (string, error) {
	rel, err := Resolve(projectRoot, target)
	if err != nil {
		return "", err
	}
	return "../" + rel, nil
}

// resolveVolume handles slash-normalized paths where at least one side
// carries a Windows volume
func resolveVolume(base, target string) (string, error) {
	bv, tv := volume(base), volume(target)
	if tv == "" && !strings.HasPrefix(target, "/") {
		target = base + "/" + target
		tv = bv
	}
	if bv == "" || !strings.EqualFold(bv, tv) {
		return "", fmt.Errorf("failed to resolve %s from %s: paths are on different volumes", target, base)
	}

	from := splitPath(base[len(bv):])
	to := splitPath(target[len(tv):])

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	parts := make([]string, 0, len(from)-common+len(to)-common)
	for range from[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)

	if len(parts) == 0 {
		return ".", nil
	}
	return strings.Join(parts, "/"), nil
}

// volume returns the drive ("C:") or UNC share ("//host/share") prefix of a
// slash-normalized path, or "" when it has none
func volume(p string) string {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return p[:2]
	}
	if strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "///") {
		parts := strings.SplitN(p[2:], "/", 3)
		if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
			return "//" + parts[0] + "/" + parts[1]
		}
	}
	return ""
}

func splitPath(p string) []string {
	p = path.Clean("/" + p)
	if p == "/" {
		return nil
	}
	return strings.Split(p[1:], "/")
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func normalize(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
