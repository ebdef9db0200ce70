package program

import (
	"fmt"
	"strings"

	"avm/errs"
	"avm/lang"
	"avm/types"
)

// RecordEntry is one ordered (name, mode-tagged type) pair of a declared
// record.
type RecordEntry struct {
	Name lang.Identifier
	Type types.EntryType
}

// RecordType is a declared record: an ordered, distinctly-named sequence
// of mode-tagged entries.
type RecordType struct {
	Name    lang.Identifier
	Entries []RecordEntry
}

func (rt *RecordType) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "record %s:\n", rt.Name)
	for _, e := range rt.Entries {
		fmt.Fprintf(&b, "    %s as %s;\n", e.Name, e.Type)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// AddRecord rejects a reused/reserved name and any reserved or duplicate
// entry name, resolves every entry's inner plaintext type exactly as
// AddInterface does, then inserts.
func (p *Program) AddRecord(name lang.Identifier, entries []RecordEntry) error {
	if err := checkNewName(p, name); err != nil {
		return err
	}

	seen := make(map[lang.Identifier]struct{}, len(entries))
	for _, e := range entries {
		if lang.IsReservedName(e.Name) {
			return errs.NewNameError(string(e.Name), "reserved keyword used as record entry name")
		}
		if _, dup := seen[e.Name]; dup {
			return errs.NewNameError(string(e.Name), "duplicate record entry name")
		}
		seen[e.Name] = struct{}{}
		if err := p.checkPlaintextTypeResolves(e.Type.Type); err != nil {
			return err
		}
	}

	rt := &RecordType{Name: name, Entries: append([]RecordEntry(nil), entries...)}
	p.records[name] = rt
	p.register(name, DeclRecord)
	p.log.WithField("record", string(name)).Debug("added record")
	return nil
}
