package apierr

// Machine-readable error codes. The set is fixed; clients switch on these.
const (
	CodeUnauthenticated         = "UNAUTHENTICATED"
	CodeAccessDenied            = "ACCESS_DENIED"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeValidationError         = "VALIDATION_ERROR"
	CodePayloadTooLarge         = "PAYLOAD_TOO_LARGE"
	CodeEmptyBody               = "EMPTY_BODY"
	CodeInvalidJSON             = "INVALID_JSON"
	CodeInvalidRequestStructure = "INVALID_REQUEST_STRUCTURE"
	CodeAccountNotFound         = "ACCOUNT_NOT_FOUND"
	CodeCategoryNotFound        = "CATEGORY_NOT_FOUND"
	CodeTransactionNotFound     = "TRANSACTION_NOT_FOUND"
	CodeCurrencyNotFound        = "CURRENCY_NOT_FOUND"
	CodeResourceNotFound        = "RESOURCE_NOT_FOUND"
	CodeDuplicateResource       = "DUPLICATE_RESOURCE"
	CodeInvalidReference        = "INVALID_REFERENCE"
	CodeInvalidDateRange        = "INVALID_DATE_RANGE"
	CodePageNotFound            = "PAGE_NOT_FOUND"
	CodeDataIntegrityError      = "DATA_INTEGRITY_ERROR"
	CodeDatabaseSchemaError     = "DATABASE_SCHEMA_ERROR"
	CodeDatabaseError           = "DATABASE_ERROR"
	CodeHierarchyError          = "HIERARCHY_ERROR"
	CodeTypeMismatchError       = "TYPE_MISMATCH_ERROR"
	CodeCategoryInUse           = "CATEGORY_IN_USE"
	CodeAccountInUse            = "ACCOUNT_IN_USE"
	CodeInternalError           = "INTERNAL_ERROR"
)
