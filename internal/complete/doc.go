// Package complete is the static completion index: snippets, C++ keywords
// and standard library headers, queried by case-insensitive prefix.
//
// The tables are built once at init and never modified, so every exported
// function is safe for concurrent use.
package complete
