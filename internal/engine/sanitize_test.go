package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeIdentifier(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in, want string
	}{
		{"Content", "Content"},
		{"Default.txt", "Default_txt"},
		{"File | Weird.ini", "File___Weird_ini"},
		{"2 Another &  Subdirectory", "_2_Another____Subdirectory"},
		{"a--b", "a__b"},
		{"!!!", "___"},
		{"", "_"},
		{"_private", "_private"},
		{"Überschrift", "Überschrift"},
		{"日本語.txt", "日本語_txt"},
		{"emoji😀", "emoji_"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, SanitizeIdentifier(tc.in), "input %q", tc.in)
	}
}

func TestSanitizeNamespace(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in, want string
	}{
		{"Project", "Project"},
		{"Project.", "Project"},
		{".Project", "Project"},
		{"Project..Sub", "Project.Sub"},
		{"Project.Subdirectory.2 Another &  Subdirectory", "Project.Subdirectory._2_Another____Subdirectory"},
		{"My-Company.Some Lib", "My_Company.Some_Lib"},
		{"", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, SanitizeNamespace(tc.in), "input %q", tc.in)
	}
}
