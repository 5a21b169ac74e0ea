package kernel

import "errors"

// ErrTaskLimitExceeded is returned by Create when Config.maxTasks is set
// and already reached. A host simulator has a caller able to handle
// exhaustion gracefully, so this is a returned error rather than a fatal
// abort.
var ErrTaskLimitExceeded = errors.New("nanokern: task limit exceeded")
