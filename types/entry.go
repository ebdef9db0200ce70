package types

import "fmt"

// EntryType is a PlaintextType tagged with a privacy mode. Records are
// sequences of (name, EntryType) pairs.
type EntryType struct {
	Mode Mode
	Type PlaintextType
}

// NewEntryType constructs an EntryType from a mode and a plaintext type.
func NewEntryType(mode Mode, t PlaintextType) EntryType {
	return EntryType{Mode: mode, Type: t}
}

// Equal requires both mode and inner plaintext type to match.
func (e EntryType) Equal(o EntryType) bool {
	return e.Mode == o.Mode && e.Type.Equal(o.Type)
}

// String renders as "TYPE.mode", matching the record field grammar
// "FIELD as TYPE.MODE;".
func (e EntryType) String() string {
	return fmt.Sprintf("%s.%s", e.Type, e.Mode)
}
