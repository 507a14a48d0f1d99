// ABOUTME: Domain error types for the dataset store and workflow operations
// ABOUTME: All errors are returned as values and matched with errors.As
package store

import "fmt"

// NotFoundError signals an unknown client or property ID.
type NotFoundError struct {
	Kind string // "client" or "property"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError signals bad input: an unknown role or stage, missing
// required seller fields, or a malformed datetime.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InvalidRoleError signals an operation applied to the wrong role, such
// as matching listings for a seller.
type InvalidRoleError struct {
	ClientID string
	Role     string
	Op       string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("client %s has role %q: %s requires a buyer", e.ClientID, e.Role, e.Op)
}

// UnavailableError signals an operation on a sold property.
type UnavailableError struct {
	PropertyID string
	Status     string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("property %s is not available (status: %s)", e.PropertyID, e.Status)
}

// ConflictError signals a viewing that overlaps an existing one for the
// same property.
type ConflictError struct {
	PropertyID string
	Existing   string
	Requested  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("viewing conflict for property %s: requested %s is within an hour of existing viewing at %s",
		e.PropertyID, e.Requested, e.Existing)
}
