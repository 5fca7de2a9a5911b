package catalog

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// codeUniqueViolation is the SQLSTATE for a unique constraint violation.
const codeUniqueViolation = "23505"

// uniqueViolation reports whether err is a unique constraint violation and,
// when it is, returns the name of the violated constraint.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// crudErrorMessage converts a store error from a write operation into the
// message reported to the caller. Uniqueness violations name the violated
// constraint so the caller can tell which record already exists.
func crudErrorMessage(err error) string {
	if constraint, ok := uniqueViolation(err); ok {
		return fmt.Sprintf("Uniqueness constraint violated: %s. A similar record already exists.", constraint)
	}
	return fmt.Sprintf("Operation failed: %v", err)
}

// addSnackErrorMessage converts a store error from the snack insert into
// the message reported to the caller. The uniqueness case names the snack
// key columns instead of the constraint, since the violation may come from
// the lookup tables created along the way.
func addSnackErrorMessage(err error) string {
	if _, ok := uniqueViolation(err); ok {
		return "A snack with the same brand, name, and spec likely already exists."
	}
	return fmt.Sprintf("Database error: %v", err)
}

// queryErrorMessage converts a store error from a read operation into the
// message reported to the caller.
func queryErrorMessage(err error) string {
	return fmt.Sprintf("Query failed: %v", err)
}
