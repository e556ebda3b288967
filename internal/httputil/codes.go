package httputil

// Machine-readable error codes returned alongside error messages so API
// clients can branch on the code instead of parsing message text.
const (
	CodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	CodeMissingSession      = "MISSING_SESSION"
	CodeInvalidSession      = "INVALID_SESSION"
	CodeNameRequired        = "NAME_REQUIRED"
	CodeEmailRequired       = "EMAIL_REQUIRED"
	CodeInvalidEmailFormat  = "INVALID_EMAIL_FORMAT"
	CodeEmailAlreadyExists  = "EMAIL_ALREADY_EXISTS"
	CodeDescriptionRequired = "DESCRIPTION_REQUIRED"
	CodeInvalidDate         = "INVALID_DATE"
	CodeMissingDietFlag     = "MISSING_DIET_FLAG"
	CodeInvalidMealID       = "INVALID_MEAL_ID"
	CodeMealNotFound        = "MEAL_NOT_FOUND"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
	CodeInternalError       = "INTERNAL_ERROR"
)
