package api

// Result codes reported by the registrar API inside the response body.
// The client never interprets these beyond the login handshake; they are
// exported so callers can check results without magic numbers.
const (
	StatusOK              = 1000 // command completed successfully
	StatusPending         = 1001 // command completed, action pending
	StatusSyntaxError     = 2001 // command syntax error
	StatusParameterError  = 2002 // command use error
	StatusMissingParam    = 2003 // required parameter missing
	StatusParameterRange  = 2004 // parameter value range error
	StatusUnknownCommand  = 2101 // unimplemented command
	StatusAuthError       = 2200 // authentication error
	StatusAuthzError      = 2201 // authorization error
	StatusObjectNotExists = 2303 // object does not exist
	StatusCommandFailed   = 2400 // command failed
)
