package engine

import "strings"

const (
	fenceQuote    = '"'
	minFenceWidth = 3
)

// FenceWidth returns the number of quote characters needed to fence content:
// one more than its longest run of quotes, and never less than three. A
// shorter run inside the content can then never close the literal.
func FenceWidth(content string) int {
	longest, run := 0, 0
	for i := 0; i < len(content); i++ {
		if content[i] == fenceQuote {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return max(longest+1, minFenceWidth)
}

// Fence returns the delimiter that opens and closes the literal for content.
func Fence(content string) string {
	return strings.Repeat(string(fenceQuote), FenceWidth(content))
}
