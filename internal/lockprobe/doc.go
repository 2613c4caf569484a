// Package lockprobe decides whether a job is still running by probing the
// advisory lock its queue tool holds on the job's output file.
//
// A probe takes an exclusive non-blocking lock and releases it at once when it
// succeeds, so the probing process never keeps a job waiting. Only a
// contended lock counts as running; every other failure is reported as not
// running so a misbehaving lock implementation cannot wedge a follower.
package lockprobe
