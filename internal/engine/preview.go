package engine

import (
	"fmt"
	"strings"
)

const (
	cdataClose        = "]]>"
	cdataCloseEscaped = "]]]]><![CDATA[>"
)

var entityReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Preview is the documentation rendering of the first lines of a resource.
type Preview struct {
	Style PreviewStyle
	// Lines holds the escaped content lines followed, when lines were
	// omitted, by one summary line.
	Lines   []string
	Total   int
	Omitted int
}

// BuildPreview escapes up to limit lines of content for a documentation
// comment. It returns nil when limit is zero. Content is scanned once and at
// most limit lines are copied, so the cost stays linear for large inputs.
func BuildPreview(content string, limit uint, style PreviewStyle) *Preview {
	if limit == 0 {
		return nil
	}
	p := &Preview{Style: style}
	take := func(line string) {
		p.Total++
		if uint(len(p.Lines)) < limit {
			p.Lines = append(p.Lines, escapePreviewLine(line, style))
		}
	}

	start := 0
	for i := 0; i < len(content); {
		w := lineBreakWidth(content, i)
		if w == 0 {
			i++
			continue
		}
		take(content[start:i])
		i += w
		start = i
	}
	take(content[start:])

	if p.Total > len(p.Lines) {
		p.Omitted = p.Total - len(p.Lines)
		p.Lines = append(p.Lines, fmt.Sprintf("[%d more lines (%d total)]", p.Omitted, p.Total))
	}
	return p
}

// lineBreakWidth returns the byte length of the line break starting at
// content[i], or zero. Besides CR, LF and CRLF it recognizes NEL, LS and PS,
// which also terminate a single-line comment in the generated source.
func lineBreakWidth(content string, i int) int {
	switch content[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(content) && content[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xC2: // U+0085
		if i+1 < len(content) && content[i+1] == 0x85 {
			return 2
		}
	case 0xE2: // U+2028, U+2029
		if i+2 < len(content) && content[i+1] == 0x80 && (content[i+2] == 0xA8 || content[i+2] == 0xA9) {
			return 3
		}
	}
	return 0
}

func escapePreviewLine(line string, style PreviewStyle) string {
	line = replaceXMLInvalid(line)
	if style == PreviewEntities {
		return entityReplacer.Replace(line)
	}
	return strings.ReplaceAll(line, cdataClose, cdataCloseEscaped)
}

// replaceXMLInvalid maps C0 control characters other than tab, which XML
// forbids even inside CDATA, to U+FFFD.
func replaceXMLInvalid(line string) string {
	if strings.IndexFunc(line, isXMLInvalid) < 0 {
		return line
	}
	return strings.Map(func(r rune) rune {
		if isXMLInvalid(r) {
			return '\uFFFD'
		}
		return r
	}, line)
}

func isXMLInvalid(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' && r != '\r'
}
