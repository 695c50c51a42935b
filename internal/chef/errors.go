package chef

import (
	"fmt"
)

// ResponseParseError reports a model response that could not be parsed
// into the expected shape. Raw carries the offending payload for
// diagnostics.
type ResponseParseError struct {
	Op  string
	Raw string
	Err error
}

func (e *ResponseParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid model response: %v. Response: %s", e.Op, e.Err, e.Raw)
	}
	return fmt.Sprintf("%s: invalid model response. Response: %s", e.Op, e.Raw)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

func errMissingKey(key string) error {
	return fmt.Errorf("missing required top-level %q key", key)
}

func errIncompleteRecipe(index int) error {
	return fmt.Errorf("recipe %d is missing a required field (name, ingredients or instructions)", index)
}
