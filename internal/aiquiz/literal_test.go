package aiquiz

import (
	"encoding/json"
	"testing"
)

func TestNormalizeLiterals(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single quoted keys and values", `{'a': 'b'}`, `{"a": "b"}`},
		{"capitalized literals", `[True, False, None]`, `[true, false, null]`},
		{"double quoted strings untouched", `{"q": "It's True"}`, `{"q": "It's True"}`},
		{"embedded double quote escaped", `{'q': 'say "hi"'}`, `{"q": "say \"hi\""}`},
		{"escaped apostrophe", `{'q': 'it\'s'}`, `{"q": "it's"}`},
		{"other escapes kept", `{'q': 'a\nb'}`, `{"q": "a\nb"}`},
		{"trailing comma in list", `[1, 2, ]`, `[1, 2 ]`},
		{"trailing comma in object", `{"a": 1,}`, `{"a": 1}`},
		{"identifiers that only start like literals", `[Truey, NoneSuch]`, `[Truey, NoneSuch]`},
		{"escaped quotes inside double quoted", `{"q": "a \"True\" b"}`, `{"q": "a \"True\" b"}`},
		{"unterminated single quote is closed", `['abc`, `["abc"`},
		{"raw tab and carriage return escaped", "['a\tb\rc']", `["a\tb\rc"]`},
		{"other control bytes escaped", "['a\x01b\x1fc']", `["a\u0001b\u001fc"]`},
		{"mixed quoting", `[{'id': 1, "question": "Why's the sky blue?"}]`, `[{"id": 1, "question": "Why's the sky blue?"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLiterals(tt.in); got != tt.want {
				t.Errorf("NormalizeLiterals(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeLiteralsIsIdempotentOnStrictJSON(t *testing.T) {
	in := `[{"id": 1, "ok": true, "note": null, "text": "it's \"quoted\""}]`
	if got := NormalizeLiterals(in); got != in {
		t.Errorf("strict JSON changed: %q", got)
	}
}

func TestNormalizeLiteralsControlCharactersDecode(t *testing.T) {
	in := "[{'question': 'Indent\twith tab', 'note': 'bell\x07\r\nend'}]"
	var got []map[string]string
	if err := json.Unmarshal([]byte(NormalizeLiterals(in)), &got); err != nil {
		t.Fatalf("normalized text is not valid JSON: %v", err)
	}
	if got[0]["question"] != "Indent\twith tab" {
		t.Errorf("question = %q", got[0]["question"])
	}
	if got[0]["note"] != "bell\x07\r\nend" {
		t.Errorf("note = %q", got[0]["note"])
	}
}
