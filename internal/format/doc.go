// Package format implements the line-oriented C++ reformatter used by the
// `cppedit fmt` command, the buffer store and the language server.
//
// The pass is regex based and works one physical line at a time: it tracks a
// brace depth counter, masks double-quoted literals, normalizes operator
// spacing and include directives, and splits compound statements.
//
// Назначение: нормализация отступов и пробелов вокруг операторов без парсинга.
// Не делает: разбор грамматики, AST, IO.
// Зависимости: github.com/mattn/go-runewidth (только для LongLines).
package format
