package jsonpath

import "testing"

func TestLookup(t *testing.T) {
	body := []byte(`{
		"text": "hello",
		"results": [
			{"alternatives": [{"transcript": "ok", "confidence": 0.9}]}
		],
		"count": 3
	}`)

	cases := []struct {
		path string
		want string
	}{
		{"text", "hello"},
		{"results[0].alternatives[0].transcript", "ok"},
		{"count", "3"},
		{"results[0].alternatives[0].confidence", "0.9"},
	}
	for _, c := range cases {
		got, err := Lookup(body, c.path)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", c.path, err)
		}
		if got != c.want {
			t.Fatalf("Lookup(%q): expected %q, got %q", c.path, c.want, got)
		}
	}
}

func TestLookupErrors(t *testing.T) {
	body := []byte(`{"text": "hello", "items": ["a"]}`)

	for _, path := range []string{"", "missing", "items[5]", "text[0]", "items"} {
		if _, err := Lookup(body, path); err == nil {
			t.Fatalf("Lookup(%q): expected error", path)
		}
	}

	if _, err := Lookup([]byte("not json"), "text"); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}

func TestSplitToken(t *testing.T) {
	key, idxs, err := splitToken("foo[0][1]")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if key != "foo" || len(idxs) != 2 || idxs[0] != 0 || idxs[1] != 1 {
		t.Fatalf("unexpected parse result: key=%s idxs=%v", key, idxs)
	}
	if _, _, err := splitToken("foo[x]"); err == nil {
		t.Fatalf("expected error for non-numeric index")
	}
	if _, _, err := splitToken("foo[1"); err == nil {
		t.Fatalf("expected error for missing bracket")
	}
}
