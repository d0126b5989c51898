// Package lifecycle holds shared limits for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every blocking start or stop hook.
const DefaultTimeout = 10 * time.Second
