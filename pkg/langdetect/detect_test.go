package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/rstexpand/pkg/langdetect"
)

func TestIsRST(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{
			name: "rst extension short-circuits",
			path: "docs/index.rst",
			want: true,
		},
		{
			name: "rest extension short-circuits",
			path: "guide.REST",
			want: true,
		},
		{
			name:    "txt with directive marker",
			path:    "api.txt",
			content: "Intro.\n\n.. autofunction:: demo.alpha\n",
			want:    true,
		},
		{
			name:    "txt with adorned title and literal block",
			path:    "manual.txt",
			content: "Manual\n======\n\nUsage::\n\n   run it\n",
			want:    true,
		},
		{
			name:    "plain txt",
			path:    "notes.txt",
			content: "Eggs\nMilk\nBread\n",
			want:    false,
		},
		{
			name:    "adornment alone is not enough",
			path:    "divider.txt",
			content: "some text\n-----\nmore text\n",
			want:    false,
		},
		{
			name:    "empty txt",
			path:    "empty.txt",
			content: "",
			want:    false,
		},
		{
			name:    "go source",
			path:    "main.go",
			content: "package main\n",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, langdetect.IsRST(tt.path, []byte(tt.content)))
		})
	}
}
