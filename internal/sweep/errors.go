package sweep

import (
	"errors"
	"net/http"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

var (
	// ErrProfileAborted marks an error that ended one profile's sweep
	// under the profile failure policy. The run continues with the next
	// profile.
	ErrProfileAborted = errors.New("profile sweep aborted")

	// ErrProfileUnavailable is returned when a profile cannot be loaded
	// and strict_profiles is set.
	ErrProfileUnavailable = errors.New("AWS profile could not be loaded")
)

// accessHint follows every authorization failure in the report.
const accessHint = "Your AWS profile does not have access. Please fix this and try again\n"

// accessDeniedCodes are the AWS error codes meaning the caller's
// credentials were rejected or lack permission for the call or region.
var accessDeniedCodes = map[string]struct{}{
	"AccessDenied":                {},
	"AccessDeniedException":       {},
	"UnauthorizedOperation":       {},
	"AuthFailure":                 {},
	"InvalidClientTokenId":        {},
	"UnrecognizedClientException": {},
	"OptInRequired":               {},
	"SignatureDoesNotMatch":       {},
	"ExpiredToken":                {},
	"ExpiredTokenException":       {},
}

// IsAccessDenied reports whether err is an authorization failure: an AWS
// API error with one of the access-denied codes, or any HTTP 403 response.
func IsAccessDenied(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := accessDeniedCodes[apiErr.ErrorCode()]; ok {
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == http.StatusForbidden
	}
	return false
}
