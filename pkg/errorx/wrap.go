package errorx

import "fmt"

// Wrap annotates err with the operation name. A nil err stays nil, so it is
// safe to wrap a return value unconditionally. errors.Is/As see through it.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
