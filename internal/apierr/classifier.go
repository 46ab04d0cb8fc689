package apierr

import (
	"errors"
	"net/http"
	"strings"
)

// rule maps an error-message substring to an API error outcome. Rules are
// evaluated in declaration order and the first match wins; several
// substrings overlap (for example "Transaction not found or access denied"
// contains "not found"), so reordering a table changes behavior.
type rule struct {
	substrings []string
	code       string
	status     int
}

func (r rule) matches(message string) bool {
	for _, s := range r.substrings {
		if strings.Contains(message, s) {
			return true
		}
	}
	return false
}

var transactionRules = []rule{
	{[]string{"Transaction not found or access denied"}, CodeTransactionNotFound, http.StatusNotFound},
	{[]string{"not found", "not accessible"}, CodeResourceNotFound, http.StatusBadRequest},
	{[]string{"already exists"}, CodeDuplicateResource, http.StatusConflict},
	{[]string{"no longer exists"}, CodeInvalidReference, http.StatusBadRequest},
	{[]string{"Invalid date range"}, CodeInvalidDateRange, http.StatusBadRequest},
	{[]string{"does not exist"}, CodePageNotFound, http.StatusNotFound},
	{[]string{"Invalid transaction data"}, CodeDataIntegrityError, http.StatusInternalServerError},
	{[]string{"Database schema error"}, CodeDatabaseSchemaError, http.StatusInternalServerError},
	{[]string{"Access denied", "insufficient permissions"}, CodeAccessDenied, http.StatusForbidden},
	{[]string{
		"Failed to create", "Failed to fetch", "Failed to update", "Failed to delete",
		"Database connection", "Failed to verify",
	}, CodeDatabaseError, http.StatusInternalServerError},
}

var accountRules = []rule{
	{[]string{"Account not found or access denied"}, CodeAccountNotFound, http.StatusNotFound},
	{[]string{"Cannot deactivate account with pending transactions"}, CodeAccountInUse, http.StatusConflict},
}

var categoryRules = []rule{
	{[]string{"Category not found or access denied"}, CodeCategoryNotFound, http.StatusNotFound},
	{[]string{"Maximum category depth"}, CodeHierarchyError, http.StatusBadRequest},
	{[]string{"type must match parent"}, CodeTypeMismatchError, http.StatusBadRequest},
	{[]string{"Cannot delete category with active transactions"}, CodeCategoryInUse, http.StatusConflict},
}

// Classify maps any error to an *Error. Typed errors pass through as-is;
// untyped ones are matched against the transaction/general table.
func Classify(err error) *Error {
	return classify(err, transactionRules)
}

// ClassifyAccount consults the account vocabulary before the general table.
func ClassifyAccount(err error) *Error {
	return classify(err, append(append([]rule{}, accountRules...), transactionRules...))
}

// ClassifyCategory consults the category vocabulary before the general table.
func ClassifyCategory(err error) *Error {
	return classify(err, append(append([]rule{}, categoryRules...), transactionRules...))
}

func classify(err error, rules []rule) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	message := err.Error()
	for _, r := range rules {
		if r.matches(message) {
			return (&Error{Code: r.code, Message: message, Status: r.status}).WithCause(err)
		}
	}
	return Internal().WithCause(err)
}
