package httpserver

// The JSON respond/decode/validate helpers live in the leaf package
// internal/httpserver/respond so that packages httpserver itself depends on
// (pkg/tenant) can use them without an import cycle. The declarations below
// re-export them under the httpserver package for existing callers.

import (
	"net/http"

	"github.com/wapptv/storefront/internal/httpserver/respond"
)

// ErrorResponse is the JSON error envelope shared by every endpoint.
type ErrorResponse = respond.ErrorResponse

// ValidationError represents a single field validation failure.
type ValidationError = respond.ValidationError

// ValidationErrorResponse is the error envelope returned for invalid requests.
type ValidationErrorResponse = respond.ValidationErrorResponse

// Respond writes a JSON response with the given status code.
func Respond(w http.ResponseWriter, status int, data any) {
	respond.Respond(w, status, data)
}

// RespondError writes a JSON error response.
func RespondError(w http.ResponseWriter, status int, err string, message string) {
	respond.RespondError(w, status, err, message)
}

// Decode reads a JSON request body into dst.
func Decode(r *http.Request, dst any) error {
	return respond.Decode(r, dst)
}

// Validate runs struct-tag validation on v and returns field-level errors.
func Validate(v any) []ValidationError {
	return respond.Validate(v)
}

// DecodeAndValidate decodes a JSON body and validates the result. On failure
// it writes the error response and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	return respond.DecodeAndValidate(w, r, dst)
}

// RespondValidationError writes a 422 response with field-level validation errors.
func RespondValidationError(w http.ResponseWriter, errs []ValidationError) {
	respond.RespondValidationError(w, errs)
}
