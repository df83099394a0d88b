package worlds

import (
	"sort"
	"strings"
)

// TagSet is a normalized set of world tags: case-folded, deduplicated,
// sorted. The store persists the joined form; everything else works on the
// set.
type TagSet []string

func NormalizeTags(raw []string) TagSet {
	seen := make(map[string]struct{}, len(raw))
	out := make(TagSet, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func ParseTags(joined string) TagSet {
	if joined == "" {
		return TagSet{}
	}
	return NormalizeTags(strings.Split(joined, ","))
}

func (t TagSet) String() string {
	return strings.Join(t, ",")
}

func (t TagSet) Contains(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}
