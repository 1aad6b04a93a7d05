// Package validator provides the small rule set used to check request
// parameters before anything is sent to the API.
//
// A Rule couples a Check function with the ValidationError reported when the
// check fails. Rules are evaluated either fail-fast with First, which stops at
// the first failing rule and returns it as a *ValidationError, or exhaustively
// with Apply, which collects every failure into ValidationErrors.
//
// # Usage
//
//	err := validator.First(
//	    validator.RequiredString("payment", paymentID),
//	    validator.PositiveAmount("amount", amount),
//	    validator.ValidCurrencyCode("currency", currency),
//	)
//	if err != nil {
//	    var verr *validator.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Println(verr.Field) // first offending field
//	    }
//	}
//
// # Error Handling
//
// Both *ValidationError and ValidationErrors wrap ErrValidationFailed, so
// errors.Is(err, validator.ErrValidationFailed) detects either form.
package validator
