package resolver

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Location identifies a document source: either a filesystem path or an
// HTTP(S) URL. Locations are compared and used as cache keys only through
// their canonical string form, never through the original spelling.
//
// File paths are canonicalized to absolute, cleaned form. URLs are
// canonicalized to lowercase scheme and host with a cleaned path.
type Location struct {
	canonical string
	isURL     bool
}

// FromPath returns the canonical Location for a filesystem path. Relative
// paths are resolved against the current working directory.
func FromPath(p string) (Location, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return Location{}, fmt.Errorf("resolver: cannot canonicalize path %q: %w", p, err)
	}
	return Location{canonical: filepath.Clean(abs)}, nil
}

// FromURL returns the canonical Location for an absolute HTTP(S) URL.
func FromURL(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("resolver: invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Location{}, fmt.Errorf("resolver: unsupported URL scheme %q in %q", u.Scheme, raw)
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	if u.Path != "" {
		// A trailing slash is kept: a directory-style URL is a distinct
		// location whose relative references resolve inside the directory.
		trailing := strings.HasSuffix(u.Path, "/")
		u.Path = path.Clean(u.Path)
		if trailing && u.Path != "/" {
			u.Path += "/"
		}
	}
	return Location{canonical: u.String(), isURL: true}, nil
}

// Parse returns the Location for a path or URL string, detecting URLs by
// their http:// or https:// prefix the same way the CLI input does.
func Parse(s string) (Location, error) {
	if IsURLString(s) {
		return FromURL(s)
	}
	return FromPath(s)
}

// WorkingDirectory returns the Location of the current working directory,
// the default base for documents supplied as raw text.
func WorkingDirectory() (Location, error) {
	return FromPath(".")
}

// IsURLString reports whether s spells an absolute HTTP(S) URL.
func IsURLString(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// String returns the canonical form. This is the only identity used for
// equality, hashing, cache keys, and cycle tracking.
func (l Location) String() string {
	return l.canonical
}

// IsURL reports whether the location is an HTTP(S) URL rather than a file.
func (l Location) IsURL() bool {
	return l.isURL
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool {
	return l.canonical == ""
}

// ResolveReference resolves target against the directory of l and returns
// its canonical Location. Absolute URLs are used directly; everything else
// is joined onto l's directory with "." and ".." segments collapsed.
//
// Resolution is a plain path join: query strings and percent-encoded
// segments in relative URL targets are not given special treatment.
func (l Location) ResolveReference(target string) (Location, error) {
	if IsURLString(target) {
		return FromURL(target)
	}
	if l.isURL {
		u, err := url.Parse(l.canonical)
		if err != nil {
			return Location{}, fmt.Errorf("resolver: invalid base URL %q: %w", l.canonical, err)
		}
		u.Path = path.Join(path.Dir(u.Path), target)
		return FromURL(u.String())
	}
	if filepath.IsAbs(target) {
		return FromPath(target)
	}
	return FromPath(filepath.Join(filepath.Dir(l.canonical), target))
}
