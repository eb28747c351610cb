// Package notifications pushes run outcomes to ntfy.
//
// NewService returns a no-op Service when notifications.ntfy_topic is empty,
// so callers never branch on configuration. Delivery failures are returned to
// the caller, which logs them and carries on; a notification never changes a
// run's outcome.
package notifications
