package frontmatter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"
)

// keyGen draws frontmatter keys. "description" has its own normalization
// rules and is excluded from the plain round-trip properties.
func keyGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z][a-z0-9_]{0,12}`).Filter(func(s string) bool {
		return s != DescriptionKey
	})
}

// plainValueGen draws scalar text that needs no lossy normalization:
// no newlines or dash runs.
func plainValueGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9 _.:'"\[\]\\>|#]{0,30}`)
}

func TestProperty_NoFrontmatterIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		content := rapid.StringMatching(`[A-Za-z0-9 #\n:.-]{0,80}`).
			Filter(func(s string) bool { return !strings.HasPrefix(s, Delimiter) }).
			Draw(t, "content")

		meta, body := Parse(content)
		if meta.Len() != 0 {
			t.Fatalf("Parse(%q) meta has %d keys, want 0", content, meta.Len())
		}
		if body != content {
			t.Fatalf("Parse(%q) body = %q", content, body)
		}
	})
}

func TestProperty_FlatRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfNDistinct(keyGen(), 0, 8, rapid.ID[string]).Draw(t, "keys")

		m := NewMap()
		for _, k := range keys {
			if rapid.Bool().Draw(t, "isBool") {
				m.Set(k, rapid.Bool().Draw(t, "bool"))
			} else {
				m.Set(k, plainValueGen().Draw(t, "value"))
			}
		}

		out := Serialize(m)
		parsed, _ := Parse(out)
		if !parsed.Equal(m) {
			t.Fatalf("round trip mismatch\nserialized:\n%s\nparsed: %#v\nwant:   %#v", out, parsed.ToAny(), m.ToAny())
		}

		// Parsing keeps encounter order.
		if got := strings.Join(parsed.Keys(), ","); got != strings.Join(keys, ",") {
			t.Fatalf("key order = %s, want %s", got, strings.Join(keys, ","))
		}
	})
}

func TestProperty_ListRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(rapid.StringMatching(`[a-z0-9][a-z0-9 ._'"\\\[\]]{0,10}[a-z0-9]`)).Draw(t, "items")

		m := NewMap()
		m.Set("tags", items)

		parsed, _ := Parse(Serialize(m))
		if !parsed.Equal(m) {
			t.Fatalf("list round trip: got %#v, want %#v", parsed.ToAny(), m.ToAny())
		}
	})
}

func TestProperty_ParseSerializeParseStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfNDistinct(keyGen(), 1, 6, rapid.ID[string]).Draw(t, "keys")

		var b strings.Builder
		b.WriteString("---\n")
		for _, k := range keys {
			b.WriteString(k + ": " + plainValueGen().Draw(t, "raw") + "\n")
		}
		b.WriteString("---\nbody\n")

		first, _ := Parse(b.String())
		second, body := Parse(Compose(first, "body"))
		if !second.Equal(first) {
			t.Fatalf("re-parse mismatch: %#v vs %#v", second.ToAny(), first.ToAny())
		}
		if body != "body" {
			t.Fatalf("body = %q", body)
		}
	})
}

func TestProperty_DescriptionBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		desc := rapid.String().Draw(t, "description")

		m := NewMap()
		m.Set(DescriptionKey, desc)
		lines := strings.Split(Serialize(m), "\n")

		if len(lines) != 3 {
			t.Fatalf("description spans %d lines", len(lines)-2)
		}
		value := strings.TrimPrefix(lines[1], "description: ")
		if !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
			t.Fatalf("description not quoted: %q", value)
		}
		unescaped := strings.ReplaceAll(value[1:len(value)-1], `\"`, `"`)
		if n := utf8.RuneCountInString(unescaped); n > MaxDescriptionLength {
			t.Fatalf("description has %d runes, limit %d", n, MaxDescriptionLength)
		}
	})
}
