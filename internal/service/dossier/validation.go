package dossier

import (
	"errors"
	"fmt"
	"strings"

	"arguminds/internal/export"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// stringValue dereferences value and reports whether it holds a string
func stringValue(value interface{}) (string, bool) {
	v, isNil := validation.Indirect(value)
	if isNil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// notBlank rejects strings made only of whitespace. Nil pointers pass.
func notBlank(value interface{}) error {
	s, ok := stringValue(value)
	if !ok {
		return nil
	}
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// validStatus accepts EN_COURS, TERMINE and ARCHIVE
func validStatus(value interface{}) error {
	s, ok := stringValue(value)
	if !ok || s == "" {
		return nil
	}
	if !export.IsStatus(s) {
		return fmt.Errorf("unknown status %q", s)
	}
	return nil
}

// validArgumentType accepts PRINCIPAL, SUPPORT, OBJECTION and REFUTATION
func validArgumentType(value interface{}) error {
	s, ok := stringValue(value)
	if !ok || s == "" {
		return nil
	}
	if !export.IsArgumentType(s) {
		return fmt.Errorf("unknown argument type %q", s)
	}
	return nil
}

// normalizeOptional trims a nullable string; blank becomes nil
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
