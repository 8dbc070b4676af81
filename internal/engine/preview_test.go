package engine

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Line [%d]", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestBuildPreview_Truncation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		lines     int
		limit     uint
		wantLines int
	}{
		{10, 4, 5},
		{10, 15, 10},
		{10, 10, 10},
		{1000, 50, 51},
		{1000, DefaultPreviewLineLimit, 21},
		{1000, 10000, 1000},
		{1, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d lines, limit %d", tc.lines, tc.limit), func(t *testing.T) {
			t.Parallel()

			p := BuildPreview(numberedLines(tc.lines), tc.limit, PreviewCDATA)

			require.NotNil(t, p)
			require.Len(t, p.Lines, tc.wantLines)
			assert.Equal(t, "Line [1]", p.Lines[0])
			assert.Equal(t, tc.lines, p.Total)
			if uint(tc.lines) > tc.limit {
				assert.Equal(t, tc.lines-int(tc.limit), p.Omitted)
				assert.Equal(t, fmt.Sprintf("Line [%d]", tc.limit), p.Lines[len(p.Lines)-2])
				assert.Equal(t, fmt.Sprintf("[%d more lines (%d total)]", tc.lines-int(tc.limit), tc.lines), p.Lines[len(p.Lines)-1])
			} else {
				assert.Zero(t, p.Omitted)
				assert.Equal(t, fmt.Sprintf("Line [%d]", tc.lines), p.Lines[len(p.Lines)-1])
			}
		})
	}
}

func TestBuildPreview_ZeroLimit(t *testing.T) {
	t.Parallel()
	assert.Nil(t, BuildPreview("anything", 0, PreviewCDATA))
}

func TestBuildPreview_LineBreaks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{""}},
		{"no trailing break", "a\nb", []string{"a", "b"}},
		{"trailing break", "a\n", []string{"a", ""}},
		{"crlf", "a\r\nb\r\nc", []string{"a", "b", "c"}},
		{"lone cr", "a\rb", []string{"a", "b"}},
		{"mixed", "a\r\n\nb\r", []string{"a", "", "b", ""}},
		{"unicode separators", "a\u2028b\u2029c\u0085d", []string{"a", "b", "c", "d"}},
		{"multibyte content", "é\nü", []string{"é", "ü"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := BuildPreview(tc.content, 100, PreviewCDATA)

			require.NotNil(t, p)
			assert.Equal(t, tc.want, p.Lines)
			assert.Equal(t, len(tc.want), p.Total)
		})
	}
}

func TestBuildPreview_Escaping(t *testing.T) {
	t.Parallel()

	content := "<tag attr=\"1\">a & b</tag>\nx]]>y]]>"

	cdata := BuildPreview(content, 10, PreviewCDATA)
	assert.Equal(t, []string{
		"<tag attr=\"1\">a & b</tag>",
		"x]]]]><![CDATA[>y]]]]><![CDATA[>",
	}, cdata.Lines)

	entities := BuildPreview(content, 10, PreviewEntities)
	assert.Equal(t, []string{
		"&lt;tag attr=\"1\"&gt;a &amp; b&lt;/tag&gt;",
		"x]]&gt;y]]&gt;",
	}, entities.Lines)
}

func TestBuildPreview_ControlCharactersReplaced(t *testing.T) {
	t.Parallel()

	content := "a\x00b\x1fc\td\ve\ff\n<\x08>"
	want := []string{"a\uFFFDb\uFFFDc\td\uFFFDe\uFFFDf", "<\uFFFD>"}

	cdata := BuildPreview(content, 10, PreviewCDATA)
	assert.Equal(t, want, cdata.Lines)

	entities := BuildPreview(content, 10, PreviewEntities)
	assert.Equal(t, []string{want[0], "&lt;\uFFFD&gt;"}, entities.Lines)
}

func TestBuildPreview_LargeInputStaysFast(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for b.Len() < 8<<20 {
		b.WriteString(`{"id": 12345, "name": "a \"quoted\" value", "tags": ["x", "y"]}` + "\r\n")
	}
	content := b.String()

	start := time.Now()
	p := BuildPreview(content, DefaultPreviewLineLimit, PreviewCDATA)
	elapsed := time.Since(start)

	require.NotNil(t, p)
	assert.Len(t, p.Lines, int(DefaultPreviewLineLimit)+1)
	assert.Less(t, elapsed, time.Second)
}
