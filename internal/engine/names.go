package engine

import "strings"

// Names are the identifiers derived for one resource.
type Names struct {
	Namespace string
	Container string
	Member    string

	// RelativePath is the resource path relative to the project root, using
	// '/' separators. It falls back to the full path when the resource lies
	// outside the root.
	RelativePath string
}

// MapNames derives the namespace, container and member names of the resource
// at path. Both '/' and '\' separate segments regardless of platform.
func MapNames(path string, opts ResolvedOptions) (Names, error) {
	if opts.ProjectRoot == "" {
		return Names{}, newDiagnostic(path, ErrMissingProjectRoot,
			"a project root is required to compute relative paths")
	}
	segments := splitPath(path)
	if len(segments) < 2 {
		return Names{}, newDiagnostic(path, ErrInvalidPath,
			"could not determine the directory of %q", path)
	}
	file := segments[len(segments)-1]
	dirs := segments[:len(segments)-1]
	directory := dirs[len(dirs)-1]

	relDirs, inside := trimPrefix(dirs, splitPath(opts.ProjectRoot))

	var n Names
	if inside {
		rel := make([]string, 0, len(relDirs)+1)
		rel = append(rel, relDirs...)
		n.RelativePath = strings.Join(append(rel, file), "/")
	} else {
		n.RelativePath = strings.ReplaceAll(path, `\`, "/")
	}

	switch {
	case opts.Namespace != "":
		n.Namespace = SanitizeNamespace(opts.Namespace)
	case !inside:
		return Names{}, newDiagnostic(path, ErrOutsideProjectRoot,
			"%q is not under the project root %q; set %q to embed it", path, opts.ProjectRoot, KeyNamespace)
	default:
		nsDirs := relDirs
		if opts.DirectoryAsContainer && len(nsDirs) > 0 {
			// The directory becomes the container, so its members live
			// where the directory's own namespace would have been.
			nsDirs = nsDirs[:len(nsDirs)-1]
		}
		n.Namespace = SanitizeNamespace(opts.RootNamespace + "." + strings.Join(nsDirs, "."))
	}

	switch {
	case opts.ContainerName != "":
		n.Container = SanitizeIdentifier(opts.ContainerName)
	case opts.DirectoryAsContainer:
		n.Container = SanitizeIdentifier(directory)
	default:
		n.Container = SanitizeIdentifier(file)
	}

	switch {
	case opts.Identifier != "":
		n.Member = SanitizeIdentifier(opts.Identifier)
	case opts.DirectoryAsContainer:
		n.Member = SanitizeIdentifier(file)
	default:
		n.Member = DefaultMemberName
	}
	return n, nil
}

// splitPath cleans p lexically and returns its segments.
func splitPath(p string) []string {
	p = strings.ReplaceAll(p, `\`, "/")
	var segments []string
	for _, s := range strings.Split(p, "/") {
		switch s {
		case "", ".":
		case "..":
			if len(segments) > 0 && segments[len(segments)-1] != ".." {
				segments = segments[:len(segments)-1]
			} else {
				segments = append(segments, s)
			}
		default:
			segments = append(segments, s)
		}
	}
	return segments
}

// trimPrefix returns the part of segments after prefix, and false if prefix
// does not lead segments.
func trimPrefix(segments, prefix []string) ([]string, bool) {
	if len(prefix) > len(segments) {
		return nil, false
	}
	for i, p := range prefix {
		if segments[i] != p {
			return nil, false
		}
	}
	return segments[len(prefix):], true
}
