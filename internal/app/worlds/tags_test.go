package worlds

import "testing"

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{name: "empty", in: nil, want: ""},
		{name: "lowercased and trimmed", in: []string{" PvP ", "Members"}, want: "members,pvp"},
		{name: "deduplicated", in: []string{"pvp", "pvp", "free"}, want: "free,pvp"},
		{name: "blank entries dropped", in: []string{"", "  ", "pvp"}, want: "pvp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.in).String()
			if got != tt.want {
				t.Fatalf("NormalizeTags(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTagsRoundTrip(t *testing.T) {
	ts := ParseTags("free,members,pvp")
	if len(ts) != 3 || !ts.Contains("members") {
		t.Fatalf("unexpected tag set: %v", ts)
	}
	if ts.Contains("hardcore") {
		t.Fatal("Contains should miss absent tag")
	}
	if ParseTags("").String() != "" {
		t.Fatal("empty string should parse to empty set")
	}
}
