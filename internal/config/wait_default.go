//go:build !fq_poll

package config

const defaultWaitMode = WaitModeEvent
