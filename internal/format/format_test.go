package format

import (
	"strings"
	"sync"
	"testing"
)

func TestFormatOperatorSpacing(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"assignment and plus", "a=b+c", "a = b + c"},
		{"extra whitespace collapses", "x  =  y*z", "x = y * z"},
		{"stream operator", "x<<1", "x << 1"},
		{"shift right", "y>>2", "y >> 2"},
		{"single less-than untouched", "a<b", "a<b"},
		{"equality is split", "a==b", "a = = b"},
		{"increment is split", "i++", "i + +"},
		{"negation", "if (!done)", "if ( ! done)"},
		{"compound assignment", "a -= b", "a - = b"},
		{"bitwise", "m=a&b|c^d", "m = a & b | c ^ d"},
		{"modulo and divide", "r=a%b/c", "r = a % b / c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Format(tc.in, Overrides{})
			if got != tc.want {
				t.Fatalf("Format(%q):\nwant %q\ngot  %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestFormatSplitsStatements(t *testing.T) {
	got := Format("int a=1;int b=2;", Overrides{})
	want := "int a = 1;\nint b = 2;"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if n := strings.Count(got, ";\n") + 1; n != 2 {
		t.Fatalf("expected 2 statements, got %d", n)
	}
}

func TestFormatPreservesStringLiterals(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`cout << "a+b=c" << endl;`, `cout << "a+b=c" << endl;`},
		{`cout<<"x;y"<<endl;`, `cout << "x;y" << endl;`},
		{`printf("say \"a=b\"");`, `printf("say \"a=b\"");`},
		{`s="a"+"b";`, `s = "a" + "b";`},
	}
	for _, tc := range cases {
		got := Format(tc.in, Overrides{})
		if got != tc.want {
			t.Errorf("Format(%q):\nwant %q\ngot  %q", tc.in, tc.want, got)
		}
	}
}

func TestFormatDirectives(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"#include   <vector>", "#include <vector>"},
		{"#include < vector >", "#include <vector>"},
		{"  #define  MAX(a,b)  a+b", "#define MAX(a,b) a+b"},
		{"#pragma once", "#pragma once"},
	}
	for _, tc := range cases {
		got := Format(tc.in, Overrides{})
		if got != tc.want {
			t.Errorf("Format(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestFormatProgram(t *testing.T) {
	src := strings.Join([]string{
		"#include <iostream>",
		"using namespace std;",
		"",
		"int main() {",
		`cout << "Hello" << endl;`,
		"return 0;",
		"}",
	}, "\n")
	want := strings.Join([]string{
		"#include <iostream>",
		"using namespace std;",
		"",
		"    int main() {",
		`    cout << "Hello" << endl;`,
		"    return 0;",
		"}",
	}, "\n")
	got := Format(src, Overrides{})
	if got != want {
		t.Fatalf("program mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatIsStableOnItsOutput(t *testing.T) {
	src := strings.Join([]string{
		"#include   <vector>",
		"int main() {",
		"int a=1;int b=a*2;",
		`cout<<"sum="<<a+b<<endl;`,
		"return 0;",
		"}",
	}, "\n")
	once := Format(src, Overrides{})
	twice := Format(once, Overrides{})
	if once != twice {
		t.Fatalf("second pass changed output:\nfirst  %q\nsecond %q", once, twice)
	}
}

func TestFormatIndentSizeOverride(t *testing.T) {
	src := "int x;\nint f() {\nreturn 1;\n}"
	got := Format(src, Overrides{IndentSize: Int(2)})
	want := "int x;\n  int f() {\n  return 1;\n}"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	// non-positive sizes fall back to the default
	got = Format(src, Overrides{IndentSize: Int(0)})
	want = "int x;\n    int f() {\n    return 1;\n}"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatBraceDepthNeverNegative(t *testing.T) {
	got := Format("}\n}\n}\nx=1;", Overrides{})
	want := "}\n}\n}\nx = 1;"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, " ") {
			t.Fatalf("unexpected indentation in %q", line)
		}
	}
}

func TestFormatBracesInsideLiteralsAreIgnored(t *testing.T) {
	got := Format("s = \"{\";\nx;", Overrides{})
	want := "s = \"{\";\nx;"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatOpenAndCloseOnOneLine(t *testing.T) {
	got := Format("int y;\nif (x) { a=1; return a; }", Overrides{})
	want := "int y;\nif (x) { a = 1;\n\nreturn a;\n};"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatReturnAfterSplit(t *testing.T) {
	got := Format("a=1;return a;", Overrides{})
	want := "a = 1;\n\nreturn a;"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	got = Format("return 0;", Overrides{})
	if got != "return 0;" {
		t.Fatalf("leading return should not get a blank line, got %q", got)
	}
}

func TestFormatBlankLines(t *testing.T) {
	got := Format("a;\n\n\n\nb;", Overrides{})
	if want := "a;\n\nb;"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	got = Format("a;\n\nb;", Overrides{})
	if want := "a;\n\nb;"; got != want {
		t.Fatalf("single blank line should survive: want %q, got %q", want, got)
	}

	// two blank lines already count as a run
	got = Format("a;\n\n\nb;", Overrides{})
	if want := "a;\n\nb;"; got != want {
		t.Fatalf("two blank lines should collapse to one: want %q, got %q", want, got)
	}

	got = Format("\n\n   \n", Overrides{})
	if got != "" {
		t.Fatalf("blank input should format to empty, got %q", got)
	}
}

func TestFormatUnterminatedLiteral(t *testing.T) {
	got := Format(`x="a+b;`, Overrides{})
	want := `x = "a + b;`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatDropsEmptyStatements(t *testing.T) {
	got := Format("a;;;b;\n;", Overrides{})
	want := "a;\nb;"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatConcurrentCalls(t *testing.T) {
	src := "int main() {\nint a=1;\nreturn a;\n}"
	want := Format(src, Overrides{})

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Format(src, Overrides{}); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent result differs: %q", got)
	}
}

func BenchmarkFormat(b *testing.B) {
	src := strings.Repeat("int main() {\ncout << \"a+b\" << endl;\nint x=1;int y=x*2;\nreturn 0;\n}\n", 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Format(src, Overrides{})
	}
}

func TestFormatUnicodeWhitespace(t *testing.T) {
	cases := map[string]string{
		"a\u00a0=\u00a0b":        "a = b",
		"x\v+\u3000y;":           "x + y;",
		"\uFEFFint a;":           "int a;",
		"a;\n\u00a0\n\u2028\nb;": "a;\n\nb;",
	}
	for in, want := range cases {
		if got := Format(in, Overrides{}); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
	if !isSpace('\u00a0') || !isSpace('\v') || isSpace('x') || isSpace('\u200b') {
		t.Fatalf("isSpace mismatch")
	}
}
