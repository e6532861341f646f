// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jstrict"
	"github.com/creachadair/jstrict/value"
	"github.com/google/go-cmp/cmp"
)

var eqValue = cmp.Comparer(value.Equal)

func num(s string) value.Number { return value.MustParseNumber(s) }

func TestParseStream(t *testing.T) {
	const input = `{"id":1} "x" [1,2,3] null true 42.5`
	want := []value.Value{
		value.NewObject(value.Field("id", value.Int(1))),
		value.String("x"),
		value.NewArray(value.Int(1), value.Int(2), value.Int(3)),
		value.Null{},
		value.True,
		num("42.5"),
	}

	p := jstrict.NewParser(strings.NewReader(input), nil)
	var got []value.Value
	for {
		v, err := p.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, v)
	}
	if diff := cmp.Diff(want, got, eqValue); diff != "" {
		t.Errorf("Stream values (-want, +got):\n%s", diff)
	}

	// End of input is sticky.
	for range 2 {
		if v, err := p.Next(); err != io.EOF {
			t.Errorf("Next after end: got (%v, %v), want io.EOF", v, err)
		}
	}
}

func TestParseAll(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		got, err := jstrict.ParseAll(strings.NewReader("1 2\n[3]\t{}"))
		if err != nil {
			t.Fatalf("ParseAll: unexpected error: %v", err)
		}
		want := []value.Value{value.Int(1), value.Int(2), value.NewArray(value.Int(3)), value.NewObject()}
		if diff := cmp.Diff(want, got, eqValue); diff != "" {
			t.Errorf("ParseAll (-want, +got):\n%s", diff)
		}
	})
	t.Run("Empty", func(t *testing.T) {
		got, err := jstrict.ParseAll(strings.NewReader("  \n "))
		if err != nil || len(got) != 0 {
			t.Errorf("ParseAll: got (%v, %v), want no values", got, err)
		}
	})
	t.Run("Partial", func(t *testing.T) {
		got, err := jstrict.ParseAll(strings.NewReader(`1 "two" [3`))
		if err == nil {
			t.Fatal("ParseAll: got nil error, want error")
		}
		want := []value.Value{value.Int(1), value.String("two")}
		if diff := cmp.Diff(want, got, eqValue); diff != "" {
			t.Errorf("ParseAll partial (-want, +got):\n%s", diff)
		}
		if got, want := err.Error(), "at 1:11: unexpected end of input"; got != want {
			t.Errorf("ParseAll error: got %q, want %q", got, want)
		}
	})
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		input string
		want  value.Value
	}{
		{"null", value.Null{}},
		{" true ", value.True},
		{"\n\tfalse\r\n", value.False},
		{`""`, value.String("")},
		{`"a\tb"`, value.String("a\tb")},
		{"-0", num("0")},
		{"1e400", num("1e400")},
		{"[]", value.NewArray()},
		{"{}", value.NewObject()},
		{`[[], {}, [null]]`, value.NewArray(value.NewArray(), value.NewObject(), value.NewArray(value.Null{}))},
		{`{"a": {"b": [true, false]}, "c": "d"}`, value.NewObject(
			value.Field("a", value.NewObject(value.Field("b", value.NewArray(value.True, value.False)))),
			value.Field("c", value.String("d")),
		)},
		{`{"": 0}`, value.NewObject(value.Field("", value.Int(0)))},

		// Duplicate keys: the last occurrence wins.
		{`{"a":1,"a":2}`, value.NewObject(value.Field("a", value.Int(2)))},
		{`{"a":1,"b":true,"a":[3]}`, value.NewObject(
			value.Field("a", value.NewArray(value.Int(3))),
			value.Field("b", value.True),
		)},
	}
	for _, tc := range tests {
		got, err := jstrict.ParseString(tc.input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got, eqValue); diff != "" {
			t.Errorf("Parse %#q (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestDuplicateKeys(t *testing.T) {
	v, err := jstrict.ParseString(`{"a":1,"a":2}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	obj := v.(value.Object)
	if obj.Len() != 1 {
		t.Errorf("Len: got %d, want 1", obj.Len())
	}
	if got, ok := obj.Get("a"); !ok || !value.Equal(got, value.Int(2)) {
		t.Errorf(`Get("a"): got (%v, %v), want 2`, got, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  jstrict.ErrorKind
		want  string
	}{
		// End of input
		{"", jstrict.Structural, "at 1:1: unexpected end of input"},
		{"  \n ", jstrict.Structural, "at 2:2: unexpected end of input"},
		{"{", jstrict.Structural, "at 1:2: unexpected end of input"},
		{"[1,", jstrict.Structural, "at 1:4: unexpected end of input"},
		{`{"a"`, jstrict.Structural, "at 1:5: unexpected end of input"},
		{`{"a":`, jstrict.Structural, "at 1:6: unexpected end of input"},

		// Misplaced tokens
		{"}", jstrict.Structural, `at 1:1: unexpected "}"`},
		{"]", jstrict.Structural, `at 1:1: unexpected "]"`},
		{":", jstrict.Structural, `at 1:1: unexpected ":"`},
		{",", jstrict.Structural, `at 1:1: unexpected ","`},
		{`{"a":1 "b":2}`, jstrict.Structural, `at 1:8: unexpected string "b"`},
		{`{false:1}`, jstrict.Structural, `at 1:2: unexpected false`},
		{`{1:1}`, jstrict.Structural, `at 1:2: unexpected number 1`},
		{`{"a":}`, jstrict.Structural, `at 1:6: unexpected "}"`},
		{`{"a" 1}`, jstrict.Structural, `at 1:6: unexpected number 1`},
		{`{"a"::1}`, jstrict.Structural, `at 1:6: unexpected ":"`},
		{`{"a":1,}`, jstrict.Structural, `at 1:8: unexpected "}"`},
		{`{"a":1,,}`, jstrict.Structural, `at 1:8: unexpected ","`},
		{`{"a":[}`, jstrict.Structural, `at 1:7: unexpected "}"`},
		{`{,"a":1}`, jstrict.Structural, `at 1:2: unexpected ","`},
		{`{"a":1]`, jstrict.Structural, `at 1:7: unexpected "]"`},
		{`[15,]`, jstrict.Structural, `at 1:5: unexpected "]"`},
		{`[,1]`, jstrict.Structural, `at 1:2: unexpected ","`},
		{`[1 2]`, jstrict.Structural, `at 1:4: unexpected number 2`},
		{`["a":1]`, jstrict.Structural, `at 1:5: unexpected ":"`},
		{`[1}`, jstrict.Structural, `at 1:3: unexpected "}"`},
		{"[\n  1,\n  2,\n]", jstrict.Structural, `at 4:1: unexpected "]"`},

		// Trailing content after a complete document
		{`[1],`, jstrict.Structural, `at 1:4: trailing content: unexpected ","`},
		{`1 2`, jstrict.Structural, `at 1:3: trailing content: unexpected number 2`},
		{`{} {}`, jstrict.Structural, `at 1:4: trailing content: unexpected "{"`},
		{"null\n\n]", jstrict.Structural, `at 3:1: trailing content: unexpected "]"`},

		// Lexical errors surface through the parser
		{"[\"a\x01\"]", jstrict.Lexical, `at 1:4: unescaped control '\x01' in string`},
		{`[01]`, jstrict.Lexical, `at 1:2: invalid number "01"`},
		{`{"a":nul}`, jstrict.Lexical, `at 1:6: unknown literal "nul"`},
		{`[1] @`, jstrict.Lexical, `at 1:5: unexpected '@'`},
		{`[1] x`, jstrict.Lexical, `at 1:5: unknown literal "x"`},
	}
	for _, tc := range tests {
		v, err := jstrict.ParseString(tc.input)
		if err == nil {
			t.Errorf("Parse %#q: got %v, want error %q", tc.input, v, tc.want)
			continue
		}
		if got := err.Error(); got != tc.want {
			t.Errorf("Parse %#q: got error %q, want %q", tc.input, got, tc.want)
		}
		var serr *jstrict.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: error has type %T, want *SyntaxError", tc.input, err)
		} else if serr.Kind != tc.kind {
			t.Errorf("Parse %#q: error kind %v, want %v", tc.input, serr.Kind, tc.kind)
		}
	}
}

func TestStreamTrailingComma(t *testing.T) {
	p := jstrict.NewParser(strings.NewReader("[1],"), nil)
	v, err := p.Next()
	if err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	if want := value.NewArray(value.Int(1)); !value.Equal(v, want) {
		t.Errorf("Next: got %v, want %v", v.JSON(), want.JSON())
	}
	_, err = p.Next()
	if !errors.Is(err, jstrict.ErrStructural) {
		t.Errorf("Next: got error %v, want structural", err)
	}
}

func TestStickyError(t *testing.T) {
	p := jstrict.NewParser(strings.NewReader(`1 } 2 3`), nil)
	if _, err := p.Next(); err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	_, err := p.Next()
	if err == nil {
		t.Fatal("Next: got nil error, want error")
	}
	for range 3 {
		if v, got := p.Next(); got != err {
			t.Errorf("Next after error: got (%v, %v), want %v", v, got, err)
		}
	}
	if v, got := p.Parse(); got != err {
		t.Errorf("Parse after error: got (%v, %v), want %v", v, got, err)
	}
}

func TestAllIterator(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		var got []string
		for v, err := range jstrict.NewParser(strings.NewReader(`[1] {"a":null} "s"`), nil).All() {
			if err != nil {
				t.Fatalf("All: unexpected error: %v", err)
			}
			got = append(got, v.JSON())
		}
		if diff := cmp.Diff([]string{`[1]`, `{"a":null}`, `"s"`}, got); diff != "" {
			t.Errorf("All (-want, +got):\n%s", diff)
		}
	})
	t.Run("Error", func(t *testing.T) {
		var nv, ne int
		for _, err := range jstrict.NewParser(strings.NewReader(`true false ] null`), nil).All() {
			if err != nil {
				ne++
			} else {
				nv++
			}
		}
		if nv != 2 || ne != 1 {
			t.Errorf("All: got %d values and %d errors, want 2 and 1", nv, ne)
		}
	})
	t.Run("Break", func(t *testing.T) {
		p := jstrict.NewParser(strings.NewReader(`1 2 3`), nil)
		for range p.All() {
			break
		}
		v, err := p.Next()
		if err != nil || !value.Equal(v, value.Int(2)) {
			t.Errorf("Next after break: got (%v, %v), want 2", v, err)
		}
	})
}

func TestDeepNesting(t *testing.T) {
	const depth = 100000

	t.Run("Array", func(t *testing.T) {
		input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
		v, err := jstrict.ParseString(input)
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		if got := v.Depth(); got != depth {
			t.Errorf("Depth: got %d, want %d", got, depth)
		}
	})
	t.Run("Object", func(t *testing.T) {
		input := strings.Repeat(`{"a":`, depth) + "1" + strings.Repeat("}", depth)
		v, err := jstrict.ParseString(input)
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		if got := v.Depth(); got != depth+1 {
			t.Errorf("Depth: got %d, want %d", got, depth+1)
		}
	})
	t.Run("Unbalanced", func(t *testing.T) {
		input := strings.Repeat("[", depth) + strings.Repeat("]", depth-1)
		_, err := jstrict.ParseString(input)
		if !errors.Is(err, jstrict.ErrStructural) {
			t.Errorf("Parse: got error %v, want structural", err)
		}
	})
}

func TestMaxDepth(t *testing.T) {
	opts := &jstrict.Options{MaxDepth: 3}
	for _, ok := range []string{`1`, `[]`, `[[[1]]]`, `{"a":[{"b":2}]}`, `[[[]],[[]],{"x":{}}]`} {
		if _, err := jstrict.NewParser(strings.NewReader(ok), opts).Parse(); err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", ok, err)
		}
	}

	tests := []struct {
		input string
		want  string
	}{
		{`[[[[1]]]]`, "at 1:4: nesting depth exceeds 3"},
		{`{"a":{"b":{"c":{}}}}`, "at 1:16: nesting depth exceeds 3"},
		{"[[],[[\n  [1]]]]", "at 2:3: nesting depth exceeds 3"},
	}
	for _, tc := range tests {
		_, err := jstrict.NewParser(strings.NewReader(tc.input), opts).Parse()
		if err == nil {
			t.Errorf("Parse %#q: got nil error, want %q", tc.input, tc.want)
			continue
		}
		if got := err.Error(); got != tc.want {
			t.Errorf("Parse %#q: got error %q, want %q", tc.input, got, tc.want)
		}
		if !errors.Is(err, jstrict.ErrMaxDepth) {
			t.Errorf("Parse %#q: error %v does not match ErrMaxDepth", tc.input, err)
		}
		if !errors.Is(err, jstrict.ErrStructural) {
			t.Errorf("Parse %#q: error %v is not structural", tc.input, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`null`, `true`, `"tab\there"`, `-0.5e-3`, `[]`, `{}`,
		`{"id":1,"tags":["a","b"],"nested":{"ok":true,"v":null}}`,
		`[1, 2.50, "three", [4, [5, {"six": 6}]]]`,
		`"\u0000\u001f\"\\/"`,
		`{"z":1,"a":2,"m":{"y":[],"b":{}}}`,
	}
	for _, input := range inputs {
		v, err := jstrict.ParseString(input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", input, err)
			continue
		}
		text := v.JSON()
		w, err := jstrict.ParseString(text)
		if err != nil {
			t.Errorf("Reparse %#q: unexpected error: %v", text, err)
			continue
		}
		if !value.Equal(v, w) {
			t.Errorf("Round trip %#q: got %#q, values differ", input, text)
		}
		if again := w.JSON(); again != text {
			t.Errorf("Serialization unstable: %#q then %#q", text, again)
		}
	}
}

func TestNumberEquality(t *testing.T) {
	v, err := jstrict.ParseString(`[5, 5.0, 5.00, 5e0, 0.5e1, 50E-1]`)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	arr := v.(value.Array)
	for i, a := range arr.All() {
		for j, b := range arr.All() {
			if !value.Equal(a, b) {
				t.Errorf("Equal(%v [%d], %v [%d]): got false, want true", a, i, b, j)
			}
		}
	}

	// Containers compare their numbers the same way.
	x, _ := jstrict.ParseString(`{"n":[1.10]}`)
	y, _ := jstrict.ParseString(`{"n":[1.1]}`)
	if !value.Equal(x, y) {
		t.Errorf("Equal(%s, %s): got false, want true", x.JSON(), y.JSON())
	}
	z, _ := jstrict.ParseString(`{"n":[1.01]}`)
	if value.Equal(x, z) {
		t.Errorf("Equal(%s, %s): got true, want false", x.JSON(), z.JSON())
	}
}

func TestErrorMatching(t *testing.T) {
	_, err := jstrict.ParseString(`["\q"]`)
	if !errors.Is(err, jstrict.ErrLexical) || errors.Is(err, jstrict.ErrStructural) {
		t.Errorf("Lexical error %v: wrong sentinel match", err)
	}
	_, err = jstrict.ParseString(`[1 1]`)
	if !errors.Is(err, jstrict.ErrStructural) || errors.Is(err, jstrict.ErrLexical) {
		t.Errorf("Structural error %v: wrong sentinel match", err)
	}
	if errors.Is(err, jstrict.ErrMaxDepth) {
		t.Errorf("Structural error %v unexpectedly matches ErrMaxDepth", err)
	}
	var serr *jstrict.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Error %v is not a *SyntaxError", err)
	}
	if want := (jstrict.LineCol{Line: 1, Column: 4}); serr.Location != want {
		t.Errorf("Location: got %v, want %v", serr.Location, want)
	}
}

func TestParseReadError(t *testing.T) {
	_, err := jstrict.Parse(failReader{strings.NewReader(`{"a": [1, 2`)})
	if err != errBroken {
		t.Errorf("Parse: got error %v, want %v", err, errBroken)
	}
	vs, err := jstrict.ParseAll(failReader{strings.NewReader(`1 2`)})
	if err != errBroken {
		t.Errorf("ParseAll: got error %v, want %v", err, errBroken)
	}
	if len(vs) != 1 {
		t.Errorf("ParseAll: got %d values, want 1", len(vs))
	}
}

func TestParserWithScanner(t *testing.T) {
	s := jstrict.NewScanner(strings.NewReader(`[1, 2] {"x": "y"}`))
	if !s.HasNext() || s.Next().Kind != jstrict.LSquare {
		t.Fatal("Scanner did not read the first token")
	}

	// The parser begins at the current position of the scanner.
	p := jstrict.NewParserWithScanner(s, nil)
	v, err := p.Next()
	if err != nil || !value.Equal(v, value.Int(1)) {
		t.Fatalf("Next: got (%v, %v), want 1", v, err)
	}
	_, err = p.Next()
	if err == nil {
		t.Fatal("Next: got nil error, want error")
	}
	if got, want := err.Error(), `at 1:3: unexpected ","`; got != want {
		t.Errorf("Next: got error %q, want %q", got, want)
	}
}

func TestParserPosition(t *testing.T) {
	p := jstrict.NewParser(strings.NewReader("[1]\n  {}"), nil)
	if _, err := p.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got := p.Position().String(); got != "1:4" {
		t.Errorf("Position: got %s, want 1:4", got)
	}
	if _, err := p.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got := p.Position().String(); got != "2:5" {
		t.Errorf("Position: got %s, want 2:5", got)
	}
}

func TestParserClose(t *testing.T) {
	cc := &closeCounter{Reader: strings.NewReader("[]")}
	p := jstrict.NewParser(cc, nil)
	if _, err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p.Close()
	p.Close()
	if cc.n != 1 {
		t.Errorf("Source closed %d times, want 1", cc.n)
	}
}
