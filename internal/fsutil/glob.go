package fsutil

import (
	"path"
	"strings"
)

// Match reports whether the slash-separated name matches pattern. Segments
// use path.Match syntax, and a segment that is exactly "**" matches zero or
// more whole segments.
func Match(pattern, name string) (bool, error) {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

// ValidatePattern returns path.ErrBadPattern if any segment of pattern is malformed.
func ValidatePattern(pattern string) error {
	for _, seg := range strings.Split(pattern, "/") {
		if _, err := path.Match(seg, ""); err != nil {
			return err
		}
	}
	return nil
}

func matchSegments(pattern, name []string) (bool, error) {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true, nil
			}
			for i := 0; i <= len(name); i++ {
				if ok, err := matchSegments(rest, name[i:]); ok || err != nil {
					return ok, err
				}
			}
			return false, nil
		}
		if len(name) == 0 {
			return false, nil
		}
		ok, err := path.Match(pattern[0], name[0])
		if err != nil || !ok {
			return false, err
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0, nil
}
