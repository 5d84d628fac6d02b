package value

import "fmt"

// TypeMismatchError reports a Value used where another kind was required.
// Subject, when set, names the construct being evaluated so callers can point
// at the failing sub-expression.
type TypeMismatchError struct {
	Subject string
	Wanted  string
	Got     Kind
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("type mismatch in %s: want %s, got %s", e.Subject, e.Wanted, e.Got)
	}
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Wanted, e.Got)
}
