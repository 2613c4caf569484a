// Package waiter suspends a follower until a followed job file is worth
// re-checking.
//
// Two strategies share one contract. Event subscribes to change notifications
// for the file's path and wakes on the first notification, coalescing bursts.
// Poll sleeps a fixed interval and wakes once the size moves away from the
// caller's cursor or the job's lock is gone. Both wake within one cycle of a
// write or a lock release, and neither spins without sleeping.
package waiter
