// Package compiler provides the front end for a scalar C subset: a
// directive-stripping preprocessor, a lexer and a recursive-descent parser
// that produce a small AST for the lowering backends.
//
// Pipeline: C source → Preprocess → Lex → Parse → *Program
package compiler
