package engine

import (
	"strings"
)

// Resource is a text file to embed, identified by its absolute path.
type Resource struct {
	Path    string
	Content string
}

// SourceKey locates a generated unit for the output sink. Uniqueness across
// resources is the sink's concern.
type SourceKey struct {
	Namespace string
	Container string
	Member    string
}

func (k SourceKey) String() string {
	if k.Namespace == "" {
		return k.Container + "." + k.Member
	}
	return k.Namespace + "." + k.Container + "." + k.Member
}

// Unit is one generated declaration: a container in a namespace holding a
// single member whose value is the resource content.
type Unit struct {
	Namespace     string
	ContainerName string
	MemberName    string
	RelativePath  string

	Member    MemberKind
	Container ContainerKind

	// Literal is the resource content, reproduced byte for byte.
	Literal string
	Fence   string
	// Preview is nil when previews are disabled.
	Preview *Preview
}

// Key returns the unit's placement key.
func (u *Unit) Key() SourceKey {
	return SourceKey{Namespace: u.Namespace, Container: u.ContainerName, Member: u.MemberName}
}

// HintName is the relative file name the unit is written to.
func (u *Unit) HintName() string {
	name := u.ContainerName + "/" + u.MemberName + ".g.cs"
	if u.Namespace == "" {
		return name
	}
	return u.Namespace + "/" + name
}

// Process resolves the options of res and generates its unit. It returns a
// nil unit and a nil error when the resource is not included.
func Process(res Resource, global, local RawOptions) (*Unit, error) {
	opts := Resolve(global, local)
	if !opts.Included {
		return nil, nil
	}
	return Generate(res, opts)
}

// Generate assembles the unit for res. The only errors it returns are
// *Diagnostic values.
func Generate(res Resource, opts ResolvedOptions) (*Unit, error) {
	names, err := MapNames(res.Path, opts)
	if err != nil {
		return nil, err
	}
	return &Unit{
		Namespace:     names.Namespace,
		ContainerName: names.Container,
		MemberName:    names.Member,
		RelativePath:  names.RelativePath,
		Member:        opts.Member,
		Container:     opts.Container,
		Literal:       res.Content,
		Fence:         Fence(res.Content),
		Preview:       BuildPreview(res.Content, opts.PreviewLineLimit, opts.PreviewStyle),
	}, nil
}

// Source renders the unit as C# source text.
func (u *Unit) Source() string {
	var b strings.Builder
	size := len(u.Literal) + 2*len(u.Fence) + 512
	if u.Preview != nil {
		for _, l := range u.Preview.Lines {
			size += len(l) + 9
		}
	}
	b.Grow(size)

	b.WriteString("// <auto-generated />\n\n")
	if u.Namespace != "" {
		b.WriteString("namespace " + u.Namespace + ";\n\n")
	}
	b.WriteString("public " + u.Container.String() + " class " + u.ContainerName + "\n{\n")
	b.WriteString("    /// <summary>\n")
	b.WriteString("    /// Gets the contents of the file at '" + docText(u.RelativePath) + "'.\n")
	if p := u.Preview; p != nil {
		writeDocLine(&b, "<code>")
		if p.Style == PreviewCDATA {
			writeDocLine(&b, "<![CDATA[")
		}
		for _, l := range p.Lines {
			writeDocLine(&b, l)
		}
		if p.Style == PreviewCDATA {
			writeDocLine(&b, "]]>")
		}
		writeDocLine(&b, "</code>")
	}
	b.WriteString("    /// </summary>\n")

	switch u.Member {
	case ConstantMember:
		b.WriteString("    public const string " + u.MemberName + " = ")
	case AccessorMember:
		b.WriteString("    public static string " + u.MemberName + " => ")
	}
	b.WriteString(u.Fence)
	b.WriteByte('\n')
	b.WriteString(u.Literal)
	// The compiler strips the last line break before the closing fence. A
	// trailing CR followed by LF would be read as one CRLF break and lost.
	if strings.HasSuffix(u.Literal, "\r") {
		b.WriteString("\r\n")
	} else {
		b.WriteByte('\n')
	}
	b.WriteString(u.Fence)
	b.WriteString(";\n}\n")
	return b.String()
}

func writeDocLine(b *strings.Builder, line string) {
	b.WriteString("    ///")
	if line != "" {
		b.WriteByte(' ')
		b.WriteString(line)
	}
	b.WriteByte('\n')
}

// docText makes s safe for a single documentation line.
func docText(s string) string {
	s = entityReplacer.Replace(s)
	if !strings.ContainsAny(s, "\r\n\u0085\u2028\u2029") {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\u0085', '\u2028', '\u2029':
			return ' '
		}
		return r
	}, s)
}
