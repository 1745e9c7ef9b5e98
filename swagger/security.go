package swagger

import (
	"encoding/json"
	"slices"
)

// SecurityRequirement lists required security schemes for an operation.
// Each key maps to a list of scope names required for execution (can be
// empty for schemes not using scopes, such as apiKey or basic).
//
// See: https://swagger.io/specification/v2/#security-requirement-object
type SecurityRequirement map[string][]string

// Requirement returns a requirement on a single scheme with the given scopes.
func Requirement(scheme string, scopes ...string) SecurityRequirement {
	if scopes == nil {
		scopes = []string{}
	}
	return SecurityRequirement{scheme: scopes}
}

// MarshalJSON encodes scopes as arrays, never null.
func (sr SecurityRequirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string(sr.normalized()))
}

// MarshalYAML encodes scopes as sequences, never null.
func (sr SecurityRequirement) MarshalYAML() (any, error) {
	return map[string][]string(sr.normalized()), nil
}

func (sr SecurityRequirement) normalized() SecurityRequirement {
	out := make(SecurityRequirement, len(sr))
	for name, scopes := range sr {
		if scopes == nil {
			scopes = []string{}
		}
		out[name] = scopes
	}
	return out
}

// SecurityRequirements is the list of alternative requirements attached to
// the document root or to an operation. A nil value means "not declared"
// and is omitted; a non-nil empty value is emitted as [] and removes any
// inherited requirement.
type SecurityRequirements []SecurityRequirement

// IsZero implements the yaml.v3 IsZeroer interface and drives json omitzero,
// so only a nil list is omitted.
func (s SecurityRequirements) IsZero() bool {
	return s == nil
}

// MarshalYAML keeps an explicitly empty list as an empty sequence.
func (s SecurityRequirements) MarshalYAML() (any, error) {
	if s == nil {
		return nil, nil
	}
	out := make([]SecurityRequirement, len(s))
	copy(out, s)
	return out, nil
}

// Equal reports whether both lists declare the same requirements in the same
// order. Nil and empty scope lists compare equal.
func (s SecurityRequirements) Equal(other SecurityRequirements) bool {
	if (s == nil) != (other == nil) || len(s) != len(other) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(other[i]) {
			return false
		}
		for name, scopes := range s[i] {
			otherScopes, ok := other[i][name]
			if !ok || !slices.Equal(scopes, otherScopes) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy that keeps the nil/empty distinction.
func (s SecurityRequirements) Clone() SecurityRequirements {
	if s == nil {
		return nil
	}
	out := make(SecurityRequirements, len(s))
	for i, req := range s {
		c := make(SecurityRequirement, len(req))
		for name, scopes := range req {
			c[name] = slices.Clone(scopes)
		}
		out[i] = c
	}
	return out
}
