package program

import (
	"strings"

	"avm/lang"
)

// String renders the program's canonical text form: declarations in
// identifiers insertion order, separated by a blank line, with no trailing
// blank line.
func (p *Program) String() string {
	var decls []string
	for _, name := range p.order {
		switch p.kinds[name] {
		case DeclInterface:
			decls = append(decls, p.interfaces[name].String())
		case DeclRecord:
			decls = append(decls, p.records[name].String())
		case DeclFunction:
			decls = append(decls, p.functions[name].String())
		}
	}
	return strings.Join(decls, "\n\n")
}

// Identifiers returns the declared identifiers in insertion order, the
// sequence Display walks.
func (p *Program) Identifiers() []string {
	out := make([]string, len(p.order))
	for i, id := range p.order {
		out[i] = string(id)
	}
	return out
}

// Kind returns the declaration kind of a declared identifier.
func (p *Program) Kind(id lang.Identifier) (DeclKind, bool) {
	k, ok := p.kinds[id]
	return k, ok
}
