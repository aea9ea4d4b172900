package resolve

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// IndexResolver resolves names against a precomputed documentation index
// loaded from a YAML file. It backs the "documentation index" flavor of the
// importable-namespace contract and is also what tests use for fixture
// objects.
//
// Index format:
//
//	objects:
//	  - name: os.getcwd
//	    kind: function
//	    signature: getcwd()
//	    doc: |
//	      Return a string representing the current working directory.
//	  - name: sample.Reader
//	    kind: class
//	    members:
//	      - name: read
//	        kind: function
//	        signature: read(n)
//	        doc: Read up to n bytes.
type IndexResolver struct {
	entries map[string]*indexEntry
}

type indexFile struct {
	Objects []*indexEntry `yaml:"objects"`
}

type indexEntry struct {
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	Doc       string        `yaml:"doc"`
	Signature string        `yaml:"signature"`
	Members   []*indexEntry `yaml:"members"`
}

// LoadIndex reads and parses a documentation index file.
func LoadIndex(path string) (*IndexResolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read doc index: %w", err)
	}
	res, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("doc index %s: %w", path, err)
	}
	return res, nil
}

// ParseIndex parses documentation index YAML.
func ParseIndex(data []byte) (*IndexResolver, error) {
	var file indexFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse doc index: %w", err)
	}

	res := &IndexResolver{entries: make(map[string]*indexEntry, len(file.Objects))}
	for _, entry := range file.Objects {
		if entry == nil || entry.Name == "" {
			return nil, fmt.Errorf("parse doc index: entry without a name")
		}
		if entry.Kind != "" && !Kind(entry.Kind).IsValid() {
			return nil, fmt.Errorf("parse doc index: %s: unknown kind %q", entry.Name, entry.Kind)
		}
		res.entries[entry.Name] = entry
	}
	return res, nil
}

// Resolve implements Resolver. It looks up the longest registered prefix of
// the dotted name and walks the remaining components through member lists,
// mirroring the import-then-attribute-walk contract.
func (r *IndexResolver) Resolve(_ context.Context, dotted string) (*Object, error) {
	if dotted == "" {
		return nil, notFound(dotted, "empty name")
	}

	components := strings.Split(dotted, ".")
	for cut := len(components); cut > 0; cut-- {
		prefix := strings.Join(components[:cut], ".")
		entry, ok := r.entries[prefix]
		if !ok {
			continue
		}
		for _, attr := range components[cut:] {
			next := findMember(entry.Members, attr)
			if next == nil {
				return nil, notFound(dotted, "%s has no member %q", entry.Name, attr)
			}
			entry = next
		}
		return r.object(dotted, entry), nil
	}
	return nil, notFound(dotted, "no index entry matches any prefix")
}

func findMember(members []*indexEntry, name string) *indexEntry {
	for _, m := range members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// object converts an index entry into the qualified Object handle.
func (r *IndexResolver) object(dotted string, entry *indexEntry) *Object {
	obj := &Object{
		Name:      dotted,
		Kind:      entryKind(entry),
		Doc:       strings.TrimRight(entry.Doc, "\n"),
		Signature: entry.Signature,
	}
	for _, m := range entry.Members {
		if strings.HasPrefix(m.Name, "_") {
			continue
		}
		obj.Members = append(obj.Members, Member{
			Name:      m.Name,
			Kind:      entryKind(m),
			Doc:       strings.TrimRight(m.Doc, "\n"),
			Signature: m.Signature,
		})
	}
	obj.Members = DedupMembers(obj.Members)
	return obj
}

// entryKind defaults to function for leaf entries and module for entries
// with members, when the index omits an explicit kind.
func entryKind(entry *indexEntry) Kind {
	if entry.Kind != "" {
		return Kind(entry.Kind)
	}
	if len(entry.Members) > 0 {
		return KindModule
	}
	return KindFunction
}

// DedupMembers drops members whose name already appeared earlier in the
// list, preserving the first occurrence. Members inherited from a base
// listed lexically earlier therefore win.
func DedupMembers(members []Member) []Member {
	if len(members) < 2 {
		return members
	}
	seen := make(map[string]struct{}, len(members))
	out := members[:0]
	for _, m := range members {
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		out = append(out, m)
	}
	return out
}
