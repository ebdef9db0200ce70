package program

import (
	"fmt"
	"strings"

	"avm/errs"
	"avm/lang"
	"avm/types"
)

// InterfaceField is one ordered (name, type) pair of a declared interface.
type InterfaceField struct {
	Name lang.Identifier
	Type types.PlaintextType
}

// InterfaceType is a declared interface: an ordered, distinctly-named
// sequence of plaintext-typed fields.
type InterfaceType struct {
	Name   lang.Identifier
	Fields []InterfaceField
}

func (it *InterfaceType) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "interface %s:\n", it.Name)
	for _, f := range it.Fields {
		fmt.Fprintf(&b, "    %s as %s;\n", f.Name, f.Type)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// AddInterface rejects a reused/reserved name and any reserved or
// duplicate field name, requires every Interface(id) field reference to
// already be declared, then inserts.
func (p *Program) AddInterface(name lang.Identifier, fields []InterfaceField) error {
	if err := checkNewName(p, name); err != nil {
		return err
	}

	seen := make(map[lang.Identifier]struct{}, len(fields))
	for _, f := range fields {
		if lang.IsReservedName(f.Name) {
			return errs.NewNameError(string(f.Name), "reserved keyword used as interface field name")
		}
		if _, dup := seen[f.Name]; dup {
			return errs.NewNameError(string(f.Name), "duplicate interface field name")
		}
		seen[f.Name] = struct{}{}
		if err := p.checkPlaintextTypeResolves(f.Type); err != nil {
			return err
		}
	}

	it := &InterfaceType{Name: name, Fields: append([]InterfaceField(nil), fields...)}
	p.interfaces[name] = it
	p.register(name, DeclInterface)
	p.log.WithField("interface", string(name)).Debug("added interface")
	return nil
}
