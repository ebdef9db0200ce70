// Package lang implements the identifier alphabet and reserved-keyword
// discipline shared by every declaration kind in a program: interfaces,
// records, functions, fields and registers all funnel name checks through
// this package.
package lang

import "regexp"

// Identifier is a user-supplied name. Equality is byte-exact.
type Identifier string

// String implements fmt.Stringer so identifiers print the same way they
// were declared.
func (id Identifier) String() string {
	return string(id)
}

// identifierPattern recognizes the whole token class with one compiled
// regexp rather than a hand-rolled character scanner.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier reports whether s is printable in the program's naming
// alphabet: an ASCII letter or underscore followed by letters, digits or
// underscores.
func IsValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// reservedKeywords is the fixed list from the grammar's reserved
// keyword table: modes, literal type tags, booleans, statement words,
// declaration words and a catch-all list of common control words. No
// identifier introduced by a program (interface, record, function, field,
// or any name besides a register) may equal one of these.
var reservedKeywords = map[Identifier]struct{}{
	"const": {}, "constant": {}, "public": {}, "private": {},
	"address": {}, "boolean": {}, "field": {}, "group": {},
	"i8": {}, "i16": {}, "i32": {}, "i64": {}, "i128": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {}, "u128": {},
	"scalar": {}, "string": {},
	"true":   {}, "false": {},
	"input": {}, "output": {}, "as": {}, "into": {},
	"function": {}, "interface": {}, "record": {}, "program": {}, "global": {},
	"return": {}, "break": {}, "assert": {}, "continue": {}, "let": {},
	"if": {}, "else": {}, "while": {}, "for": {},
	"switch": {}, "case": {}, "default": {}, "match": {},
	"enum": {}, "struct": {}, "union": {}, "trait": {}, "impl": {}, "type": {},
}

// IsReservedName reports whether id equals one of the reserved keywords,
// rejected anywhere a user-defined name is introduced.
func IsReservedName(id Identifier) bool {
	_, ok := reservedKeywords[id]
	return ok
}

// NameTable tracks the set of identifiers already declared in a program so
// uniqueness can be checked before any declaration is admitted.
//
// This is intentionally a thin, dependency-free set: Program owns the
// ordered identifiers map and consults NameTable only for the
// "have we seen this name" question, keeping name discipline (this package)
// separate from declaration bookkeeping (package program).
type NameTable struct {
	seen map[Identifier]struct{}
}

// NewNameTable constructs an empty name table.
func NewNameTable() *NameTable {
	return &NameTable{seen: make(map[Identifier]struct{})}
}

// IsUniqueName reports whether id is not yet present in the table.
func (t *NameTable) IsUniqueName(id Identifier) bool {
	_, ok := t.seen[id]
	return !ok
}

// Add records id as seen. Callers must have already checked IsUniqueName
// and IsReservedName; Add performs no validation of its own so that it can
// never fail mid-way through a multi-name declaration.
func (t *NameTable) Add(id Identifier) {
	t.seen[id] = struct{}{}
}
