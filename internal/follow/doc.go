// Package follow streams job output files until their jobs finish.
//
// A Follower runs the per-file loop: it copies bytes appended past its cursor
// in bounded chunks, resets the cursor when the file shrinks, and suspends on
// a waiter while the job's lock is held and nothing new has arrived. The loop
// ends on the first check that finds the lock free and no growth. A Session
// applies the selection rule across candidates and follows them one at a time.
//
// The unlock/last-write race is inherent to advisory locks: a job that drops
// its lock a moment before its final write is flushed can drain one check
// early. That is accepted, not corrected.
package follow
