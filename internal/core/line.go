package core

import "strings"

// Delimiter separates fields in a stored line. It must never appear inside a field.
const Delimiter = "|"

// CheckArity returns a *FormatError when fields does not match the kind's schema.
func CheckArity(kind Kind, fields []string, line int) error {
	if !kind.IsValid() {
		return ErrUnknownKind
	}
	if len(fields) != kind.FieldCount() {
		return &FormatError{Kind: kind, Line: line, Got: len(fields), Want: kind.FieldCount()}
	}
	return nil
}

// JoinFields validates fields and renders them as one stored line, without
// the trailing newline.
func JoinFields(kind Kind, fields []string) (string, error) {
	if err := CheckArity(kind, fields, 0); err != nil {
		return "", err
	}
	for _, f := range fields {
		if strings.ContainsAny(f, Delimiter+"\r\n") {
			return "", ErrDelimiterInField
		}
	}
	return strings.Join(fields, Delimiter), nil
}

// SplitLine parses one stored line into fields. Surrounding whitespace is
// trimmed from the line before splitting. It returns ok=false for blank lines.
func SplitLine(kind Kind, raw string, line int) (fields []string, ok bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false, nil
	}
	fields = strings.Split(s, Delimiter)
	if err := CheckArity(kind, fields, line); err != nil {
		return nil, false, err
	}
	return fields, true, nil
}
