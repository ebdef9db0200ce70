package parser

import (
	"fmt"
	"strings"

	"avm/lang"
	"avm/value"
)

// ParseValueText recognizes the textual runtime value forms a caller hands
// to the evaluator: a bare literal ("2field"), a brace-enclosed struct
// ("{ first: 2field, second: 3field }"), or a brace-enclosed record — the
// struct form whose first two entries are "owner" and "balance"
// ("{ owner: aleo1..., balance: 5u64, token_amount: 100u64 }").
func ParseValueText(s string) (value.RegisterValue, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		lit, err := ParseLiteralText(s)
		if err != nil {
			return value.RegisterValue{}, err
		}
		return value.NewPlaintextRegisterValue(value.NewLiteralPlaintext(lit)), nil
	}

	pairs, err := parseBracePairs(s)
	if err != nil {
		return value.RegisterValue{}, err
	}
	if isRecordShape(pairs) {
		rec, err := assembleRecord(pairs)
		if err != nil {
			return value.RegisterValue{}, err
		}
		return value.NewRecordRegisterValue(rec), nil
	}
	pv, err := assembleStruct(pairs)
	if err != nil {
		return value.RegisterValue{}, err
	}
	return value.NewPlaintextRegisterValue(pv), nil
}

type bracePair struct {
	name string
	text string
}

// parseBracePairs splits "{ a: x, b: y }" into its top-level name/text
// pairs, honoring nested braces.
func parseBracePairs(s string) ([]bracePair, error) {
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("invalid structured value %q", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, fmt.Errorf("empty structured value %q", s)
	}

	var pairs []bracePair
	depth, start := 0, 0
	segments := make([]string, 0, 4)
	for i, r := range inner {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				segments = append(segments, inner[start:i])
				start = i + 1
			}
		}
	}
	segments = append(segments, inner[start:])

	for _, seg := range segments {
		parts := strings.SplitN(seg, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected \"name: value\", got %q", strings.TrimSpace(seg))
		}
		pairs = append(pairs, bracePair{
			name: strings.TrimSpace(parts[0]),
			text: strings.TrimSpace(parts[1]),
		})
	}
	return pairs, nil
}

func isRecordShape(pairs []bracePair) bool {
	return len(pairs) >= 2 && pairs[0].name == "owner" && pairs[1].name == "balance"
}

func assembleStruct(pairs []bracePair) (value.PlaintextValue, error) {
	fields := make([]value.PlaintextField, 0, len(pairs))
	for _, pair := range pairs {
		pv, err := parsePlaintextText(pair.text)
		if err != nil {
			return value.PlaintextValue{}, err
		}
		fields = append(fields, value.PlaintextField{Name: lang.Identifier(pair.name), Value: pv})
	}
	return value.NewStructPlaintext(fields), nil
}

func assembleRecord(pairs []bracePair) (value.RecordValue, error) {
	owner, err := ParseLiteralText(pairs[0].text)
	if err != nil {
		return value.RecordValue{}, fmt.Errorf("record owner: %w", err)
	}
	balance, err := ParseLiteralText(pairs[1].text)
	if err != nil {
		return value.RecordValue{}, fmt.Errorf("record balance: %w", err)
	}
	entries := make([]value.RecordEntry, 0, len(pairs)-2)
	for _, pair := range pairs[2:] {
		pv, err := parsePlaintextText(pair.text)
		if err != nil {
			return value.RecordValue{}, err
		}
		entries = append(entries, value.RecordEntry{Name: lang.Identifier(pair.name), Value: pv})
	}
	return value.NewRecordValue(owner, balance, entries), nil
}

func parsePlaintextText(s string) (value.PlaintextValue, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		pairs, err := parseBracePairs(s)
		if err != nil {
			return value.PlaintextValue{}, err
		}
		return assembleStruct(pairs)
	}
	lit, err := ParseLiteralText(s)
	if err != nil {
		return value.PlaintextValue{}, err
	}
	return value.NewLiteralPlaintext(lit), nil
}
