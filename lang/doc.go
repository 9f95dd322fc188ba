// Package lang implements the tomelt source dialect: TOML documents
// whose raw text may carry {{! ... }} block comments and whose string
// values may hold |...| postfix expressions referencing earlier
// entries.
//
// # Pipeline
//
// Conversion proceeds in three stages:
//
//  1. Extract strips block comments from the raw text, recording the
//     index of the line where each block opened.
//  2. DecodeDocument parses the cleaned text as TOML and recovers the
//     top-level entries in document order.
//  3. Process walks the entries, rendering each as one line of the
//     form "<value> -> <label>" and threading a constants environment
//     so later expressions can reference earlier results.
//
// # Example
//
// The source document
//
//	Key1 = 10
//	{{! the sum of
//	both keys }}
//	Key2 = 20
//	Key3 = [1, 2, 3]
//	Key4 = "|Key1 Key2 +|"
//
// converts to
//
//	10 -> Key1
//	20 -> Key2   {! {{! the sum of both keys }} !}
//	(list 1 2 3) -> Key3
//	30 -> Key1 Key2 +
//
// Comments reattach by position: a comment whose opening line index in
// the raw source equals an output line's index is appended to that
// line. The two coordinate spaces only coincide for documents whose
// comment blocks sit between entries, which is the historical behavior
// this package preserves.
//
// # Expressions
//
// An expression is a string whose trimmed form starts and ends with
// the delimiter "|". The interior is a whitespace-separated postfix
// token stream of non-negative integer literals, names bound by
// earlier entries, and the binary operators + - * / and min. Division
// always yields a float result; the other operators preserve integer
// operands. Evaluation is a single left-to-right pass over one stack,
// and the stream must reduce to exactly one value.
//
// Numeric and expression entries bind their results into the constants
// environment as they are processed. A name is visible only to entries
// strictly after its own, so forward references fail as unknown
// tokens.
package lang
