package receiptcalc

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount matches every *InvalidAmountError.
var ErrInvalidAmount = errors.New("receiptcalc: invalid amount")

// InvalidAmountError reports a negative or non-finite input amount.
type InvalidAmountError struct {
	Field  string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("receiptcalc: %s %s", e.Field, e.Reason)
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }
