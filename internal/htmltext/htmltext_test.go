package htmltext

import "testing"

func TestTextStripsScriptStyleNoscript(t *testing.T) {
	src := `<html><head><style>body{color:red}</style></head><body>` +
		`<p>Hello <b>world</b></p>` +
		`<script>alert("xss")</script>` +
		`<noscript>enable js</noscript>` +
		`</body></html>`

	got := Text(src)
	if got != "Hello world" {
		t.Fatalf("Text() = %q, want %q", got, "Hello world")
	}
}

func TestTextCollapsesWhitespace(t *testing.T) {
	got := Text("<div>  one \n\t two  </div><p>three</p>")
	if got != "one two three" {
		t.Fatalf("Text() = %q, want %q", got, "one two three")
	}
}

func TestTextDecodesEntities(t *testing.T) {
	got := Text("<p>fish &amp; chips</p>")
	if got != "fish & chips" {
		t.Fatalf("Text() = %q, want %q", got, "fish & chips")
	}
}

func TestTextEmptyInput(t *testing.T) {
	if got := Text(""); got != "" {
		t.Fatalf("Text(\"\") = %q, want empty", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<p>Hi</p>\n<div>there</div>", "Hi there"},
		{"no tags at all", "no tags at all"},
		{"<br><br>", ""},
		{"a<b>b</b>c", "a b c"},
	}
	for _, tt := range tests {
		if got := StripTags(tt.in); got != tt.want {
			t.Fatalf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSnippetClipsRunes(t *testing.T) {
	if got := Snippet("héllo wörld", 5); got != "héllo" {
		t.Fatalf("Snippet() = %q, want %q", got, "héllo")
	}
	if got := Snippet("short", 200); got != "short" {
		t.Fatalf("Snippet() = %q, want unchanged input", got)
	}
}
