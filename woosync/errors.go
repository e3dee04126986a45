package woosync

import (
	"errors"
	"fmt"
)

// Outcome statuses.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
	OutcomeError   = "error"
)

// Skip reason codes. Skips are steady-state outcomes, not failures.
const (
	SkipAlreadyMapped  = "already_mapped"
	SkipNoAddress      = "no_address"
	SkipPendingPayment = "pending_payment"
	SkipUnmappedItems  = "unmapped_items"
	SkipNoLines        = "no_lines"
)

// Outcome is the result of processing one storefront order.
type Outcome struct {
	Status     string  `json:"status"`
	OrderID    int64   `json:"order_id"`
	InvoiceRef *string `json:"invoice,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// customerErrorReason tags an identity-resolution failure as a skip reason.
// The code and detail join without a separator space so reason prefixes stay
// machine-matchable.
func customerErrorReason(err error) string {
	return "customer_error:" + err.Error()
}

// SkipError carries a skip reason up through the processing steps.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string { return "skipped: " + e.Reason }

func Skip(reason string) *SkipError { return &SkipError{Reason: reason} }

func AsSkip(err error) (*SkipError, bool) {
	var s *SkipError
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}

// ValidationError is a hard rejection: the operation aborts with nothing
// partially written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// MissingProductMappingError fails an outbound order push when any local item
// has no remote product reference. The whole push aborts; no partial order.
type MissingProductMappingError struct {
	ItemCode string
}

func (e *MissingProductMappingError) Error() string {
	return fmt.Sprintf("item %s has no storefront product mapping", e.ItemCode)
}

// APIError classifies a non-2xx storefront response.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("woo api error %d at %s: %s", e.StatusCode, e.URL, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

var ErrNoPhone = errors.New("customer has no phone number")
