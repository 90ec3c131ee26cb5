package intake

import (
	"fmt"
	"strings"
)

// IncompleteSelectionError lists the categorical fields left at their
// placeholder.
type IncompleteSelectionError struct {
	Fields []string
}

func (e *IncompleteSelectionError) Error() string {
	return fmt.Sprintf("intake: incomplete selection: %s", strings.Join(e.Fields, ", "))
}

// InvalidNumericInputError reports an income or months value that does not
// parse as the required number.
type InvalidNumericInputError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidNumericInputError) Error() string {
	return fmt.Sprintf("intake: invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidNumericInputError) Unwrap() error {
	return e.Err
}
