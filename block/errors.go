package block

import "fmt"

// MalformedHashError reports a digest that does not start with 16 hex digits.
type MalformedHashError struct {
	Input  string
	Reason string
}

func (e *MalformedHashError) Error() string {
	return fmt.Sprintf("malformed hash %q: %s", e.Input, e.Reason)
}

// InvalidGasError reports gas quantities that cannot form a utilisation ratio.
type InvalidGasError struct {
	Reason string
}

func (e *InvalidGasError) Error() string {
	return "invalid gas: " + e.Reason
}
