//go:build fq_poll

package config

// Builds tagged fq_poll default to fixed-interval polling, for systems where
// change notifications are unavailable or unreliable.
const defaultWaitMode = WaitModePoll
