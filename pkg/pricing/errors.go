package pricing

import "fmt"

// DomainError reports an input outside the documented domain. It is raised
// before any arithmetic begins and indicates a caller error, never a
// transient condition.
type DomainError struct {
	Field  string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s %s", e.Field, e.Reason)
}

// ArithmeticError reports a numeric invariant violated after validation
// passed, such as a primitive returning a value outside its declared range.
// It signals an implementation defect, distinct from invalid caller input.
type ArithmeticError struct {
	Reason string
}

func (e *ArithmeticError) Error() string {
	return "arithmetic error: " + e.Reason
}
