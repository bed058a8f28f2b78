package agent

import "errors"

// ErrUnavailable reports a failed call to the external provider: network,
// auth, or rate-limit failures. The engine surfaces it without retrying;
// any retry policy belongs to the caller.
var ErrUnavailable = errors.New("provider unavailable")
