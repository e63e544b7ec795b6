package i18nx

// Error message keys
const (
	// Client errors
	KeyInvalid                 = "invalid"
	KeyValidationFailed        = "validation_failed"
	KeyValidationFailedField   = "validation_failed_field"
	KeyMalformedJSON           = "malformed_json"
	KeyUnauthorized            = "unauthorized"
	KeyInvalidCredentials      = "invalid_credentials"
	KeyTokenExpired            = "token_expired"
	KeyForbidden               = "forbidden"
	KeyAccessDenied            = "access_denied"
	KeyNotFound                = "not_found"
	KeyNotFoundWithType        = "not_found_with_type"
	KeyMethodNotAllowed        = "method_not_allowed"
	KeyConflict                = "conflict"
	KeyDuplicateEntry          = "duplicate_entry"
	KeyDuplicateEntryWithField = "duplicate_entry_with_field"
	KeyRateLimitExceeded       = "rate_limit_exceeded"

	// Business logic errors
	KeyAlreadyProcessed        = "already_processed"
	KeyBusinessRuleViolation   = "business_rule_violation"
	KeyInsufficientPermissions = "insufficient_permissions"

	// Server errors
	KeyInternalError = "internal_error"

	// Authentication specific
	KeyWrongEmailPhonePassword = "wrong_email_or_phone_or_password"

	// Onboarding / KYC specific
	KeyProfileIncomplete  = "profile_incomplete"
	KeyKycAlreadyReviewed = "kyc_already_reviewed"
	KeyKycPendingExists   = "kyc_pending_exists"
)

// Template argument names shared between errors and locale files.
const (
	ArgField        = "Field"
	ArgResourceType = "ResourceType"
)
