package role

import (
	"fmt"
	"strings"
)

type Type int

const (
	Contains Type = iota
	DoesNotContain
)

func (e Type) Values() []string {
	return []string{"CONTAINS", "DOES_NOT_CONTAIN"}
}

func (e Type) String() string {
	return e.Values()[e]
}

// UnmarshalText allows the type to be specified by name
// in a rules file.
func (e *Type) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(text)))
	for i, v := range e.Values() {
		if v == name {
			*e = Type(i)
			return nil
		}
	}

	return fmt.Errorf("unknown criteria type %q", text)
}

// Criteria is a single test performed against a cleaned role, for
// example "CONTAINS 'dialogue editor'".
type Criteria struct {
	Type  Type   `yaml:"type"`
	Value string `yaml:"value" validate:"required"`
}

// IsMatch reports whether the cleaned role provided satisfies this criteria.
// The value is compared as a lowercase substring.
func (criteria Criteria) IsMatch(cleanedRole string) bool {
	found := strings.Contains(cleanedRole, strings.ToLower(criteria.Value))
	if criteria.Type == DoesNotContain {
		return !found
	}

	return found
}

func (criteria Criteria) String() string {
	return fmt.Sprintf("%s '%s'", criteria.Type, criteria.Value)
}
