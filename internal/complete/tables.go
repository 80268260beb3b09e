package complete

// Snippet is a template inserted by its prefix. Body lines may contain
// ${N:placeholder} tab stops.
type Snippet struct {
	Prefix      string
	Body        []string
	Description string
}

// Snippets in the order they are offered.
var Snippets = []Snippet{
	{
		Prefix:      "cout",
		Body:        []string{"cout << ${1:message} << endl;"},
		Description: "Print to console",
	},
	{
		Prefix:      "cin",
		Body:        []string{"cin >> ${1:variable};"},
		Description: "Read from console",
	},
	{
		Prefix: "for",
		Body: []string{
			"for (int ${1:i} = 0; ${1:i} < ${2:size}; ${1:i}++) {",
			"    ${3:// code}",
			"}",
		},
		Description: "For loop",
	},
	{
		Prefix: "while",
		Body: []string{
			"while (${1:condition}) {",
			"    ${2:// code}",
			"}",
		},
		Description: "While loop",
	},
	{
		Prefix: "if",
		Body: []string{
			"if (${1:condition}) {",
			"    ${2:// code}",
			"}",
		},
		Description: "If statement",
	},
	{
		Prefix: "class",
		Body: []string{
			"class ${1:ClassName} {",
			"public:",
			"    ${1:ClassName}() {}",
			"    ~${1:ClassName}() {}",
			"",
			"private:",
			"    ${2:// members}",
			"};",
		},
		Description: "Class definition",
	},
	{
		Prefix:      "vector",
		Body:        []string{"vector<${1:int}> ${2:vec};"},
		Description: "Vector container",
	},
	{
		Prefix: "main",
		Body: []string{
			"#include <iostream>",
			"",
			"int main() {",
			"    ${1:// code}",
			"    return 0;",
			"}",
		},
		Description: "Main function",
	},
}

// Keywords lists the C++ keywords offered as completions.
var Keywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"int", "long", "register", "return", "short", "signed", "sizeof", "static",
	"struct", "switch", "typedef", "union", "unsigned", "void", "volatile", "while",
	"class", "namespace", "try", "catch", "throw", "template", "typename", "virtual",
	"public", "private", "protected", "friend", "using", "new", "delete", "this",
	"operator", "explicit", "inline", "mutable", "export", "bool", "true", "false",
	"nullptr", "constexpr", "static_assert", "thread_local", "alignas", "alignof",
	"char16_t", "char32_t", "decltype", "noexcept", "override", "final",
}

// Libraries lists the standard headers offered as #include completions.
var Libraries = []string{
	// I/O and strings
	"iostream", "string", "fstream", "sstream", "iomanip",
	// containers
	"vector", "map", "set", "queue", "stack", "deque", "list", "array",
	// algorithms and utilities
	"algorithm", "numeric", "utility", "functional",
	"memory",
	// C library wrappers
	"cstdlib", "cstring", "cmath", "ctime", "cassert",
	"random", "regex", "stdexcept", "exception",
}
