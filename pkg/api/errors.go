package api

import "github.com/regdrive/domrobot/internal/common/apperrors"

// Error taxonomy of the client. Transport and format failures surface as
// errors; remote result codes other than StatusOK are ordinary data in the
// returned Response and are never converted into errors by this layer.
var (
	// ErrTransport indicates a network or connection failure. The request
	// may or may not have reached the server.
	ErrTransport apperrors.Error = apperrors.New("transport failure")

	// ErrResponseFormat indicates the server responded with a body that
	// could not be parsed as JSON.
	ErrResponseFormat apperrors.Error = apperrors.New("malformed response body")

	// ErrRequestEncode indicates the call parameters could not be
	// serialized to JSON.
	ErrRequestEncode apperrors.Error = apperrors.New("cannot encode request parameters")

	// ErrTwoFactorRequired indicates the server answered the login with a
	// pending two-factor challenge and no shared secret was available to
	// complete it.
	ErrTwoFactorRequired apperrors.Error = apperrors.New("two-factor challenge required but no shared secret provided")

	// ErrUnsupportedLanguage indicates a response-language code outside the
	// set supported by the API.
	ErrUnsupportedLanguage apperrors.Error = apperrors.New("unsupported response language")
)
