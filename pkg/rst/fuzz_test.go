package rst_test

import (
	"testing"

	"github.com/yaklabco/rstexpand/pkg/rst"
)

func FuzzDelimit(f *testing.F) {
	// Add seed corpus.
	seeds := []string{
		"",
		"plain text",
		".. autofunction:: os.getcwd",
		".. automodule:: pkg\n   :members:",
		".. autoclass:: Sample\n   :members:\n\n   body",
		".. autosummary::\n\n   os.getcwd\n   os.path.join",
		".. autosummary::\n   :toctree: generated\n\n   name",
		".. autofunction::",
		"   .. autoclass:: C\n      deep\n   shallow",
		"text\n.. automodule:: a.b.c\ntext",
		".. image:: logo.png\n   :width: 100",
		"Title\n=====\n\n.. autofunction:: f\n",
		"\t.. autofunction:: f\n\t\tbody",
		".. autofunction:: f\r\n   body\r\n",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data string) {
		buf := rst.FromText(data)

		for i := 0; i < buf.Len(); i++ {
			marker, ok := rst.ParseMarker(buf.At(i).Text)
			if !ok || !rst.IsAutoDirective(marker.Name) {
				continue
			}

			blk, err := rst.Delimit(buf, i)
			if err != nil {
				continue
			}

			// Block spans must stay inside the buffer and include the marker.
			if blk.Start != i {
				t.Fatalf("block start %d, marker at %d", blk.Start, i)
			}
			if blk.End <= blk.Start || blk.End > buf.Len() {
				t.Fatalf("invalid block span [%d, %d) in buffer of %d lines", blk.Start, blk.End, buf.Len())
			}
			if blk.Name != marker.Name {
				t.Fatalf("block name %q, marker name %q", blk.Name, marker.Name)
			}
		}
	})
}

func FuzzClassify(f *testing.F) {
	seeds := []string{
		"",
		"   ",
		"..",
		".. comment",
		".. autofunction:: f",
		"====",
		":field: value",
		"text",
		"\ttabbed",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, line string) {
		class := rst.Classify(line)
		if class < rst.ClassBlank || class > rst.ClassText {
			t.Fatalf("unknown class %d for line %q", class, line)
		}
		// A line that parses as a marker must classify as a directive.
		if _, ok := rst.ParseMarker(line); ok && class != rst.ClassDirective {
			t.Fatalf("marker line %q classified as %s", line, class)
		}
	})
}
