package inventory

import "strings"

// Record exposes the string fields predicates can match on. Both Dataset and
// Exchange implement it, so the same filters work at either level.
type Record interface {
	Field(name string) (string, bool)
}

// Predicate reports whether a record matches.
type Predicate func(Record) bool

// Equals matches records whose field equals value exactly.
func Equals(field, value string) Predicate {
	return func(r Record) bool {
		got, ok := r.Field(field)
		return ok && got == value
	}
}

// Contains matches records whose field contains substr.
func Contains(field, substr string) Predicate {
	return func(r Record) bool {
		got, ok := r.Field(field)
		return ok && strings.Contains(got, substr)
	}
}

// DoesntContainAny matches records whose field contains none of the
// substrings.
func DoesntContainAny(field string, substrs ...string) Predicate {
	return func(r Record) bool {
		got, ok := r.Field(field)
		if !ok {
			return false
		}
		for _, substr := range substrs {
			if strings.Contains(got, substr) {
				return false
			}
		}
		return true
	}
}

// Either matches when any predicate matches.
func Either(predicates ...Predicate) Predicate {
	return func(r Record) bool {
		for _, p := range predicates {
			if p != nil && p(r) {
				return true
			}
		}
		return false
	}
}

// Exclude inverts a predicate.
func Exclude(p Predicate) Predicate {
	return func(r Record) bool {
		return p == nil || !p(r)
	}
}

// EqualsAny matches records whose field equals one of the values. Shorthand
// for Either over Equals.
func EqualsAny(field string, values ...string) Predicate {
	predicates := make([]Predicate, len(values))
	for i, value := range values {
		predicates[i] = Equals(field, value)
	}
	return Either(predicates...)
}

// FilterExchanges returns the exchanges matching all predicates, preserving
// order.
func FilterExchanges(exchanges []Exchange, predicates ...Predicate) []Exchange {
	var out []Exchange
	for _, exc := range exchanges {
		if matchAll(exc, predicates) {
			out = append(out, exc)
		}
	}
	return out
}

func matchAll(r Record, predicates []Predicate) bool {
	for _, p := range predicates {
		if p == nil {
			continue
		}
		if !p(r) {
			return false
		}
	}
	return true
}
