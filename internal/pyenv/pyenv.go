// Package pyenv probes the target Python environment: the interpreter
// version the matrix filters against and the compatibility tags pip would
// accept binary artifacts for.
package pyenv

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultVersion is assumed when the interpreter cannot be probed.
const DefaultVersion = "3.11"

// Tag is one interpreter/ABI/platform compatibility triple in pip's
// dash-joined form, e.g. "cp311-cp311-manylinux2014_x86_64".
type Tag struct {
	Interpreter string
	ABI         string
	Platform    string
}

func (t Tag) String() string {
	return t.Interpreter + "-" + t.ABI + "-" + t.Platform
}

// Wildcard reports whether the tag cannot identify a concrete binary
// artifact: a "none" ABI or an "any" platform.
func (t Tag) Wildcard() bool {
	return t.ABI == "none" || t.Platform == "any"
}

// ParseTag splits pip's "interpreter-abi-platform" form.
func ParseTag(s string) (Tag, error) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Tag{}, fmt.Errorf("malformed compatibility tag %q", s)
	}
	return Tag{Interpreter: parts[0], ABI: parts[1], Platform: parts[2]}, nil
}

const versionSnippet = `import sys; print("%d.%d" % sys.version_info[:2])`

// Version asks the interpreter for its major.minor version.
func Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "python3", "-c", versionSnippet).Output()
	if err != nil {
		return "", fmt.Errorf("probe python version: %w", err)
	}
	v := strings.TrimSpace(string(out))
	if v == "" {
		return "", fmt.Errorf("probe python version: empty output")
	}
	return v, nil
}

const tagsSnippet = `from pip._internal.utils.compatibility_tags import get_supported
for tag in get_supported():
    print(tag)`

// SupportedTags asks pip for the host's compatibility tags, most specific
// first. Malformed lines are skipped.
func SupportedTags(ctx context.Context) ([]Tag, error) {
	out, err := exec.CommandContext(ctx, "python3", "-c", tagsSnippet).Output()
	if err != nil {
		return nil, fmt.Errorf("probe compatibility tags: %w", err)
	}
	return parseTags(string(out)), nil
}

func parseTags(out string) []Tag {
	var tags []Tag
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		t, err := ParseTag(line)
		if err != nil {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}
