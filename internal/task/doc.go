// Package task runs periodic maintenance jobs on a cron schedule. Jobs keep
// process-local state bounded: idle sessions are expired and stale rate
// limiter entries are dropped.
package task
