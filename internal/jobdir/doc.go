// Package jobdir resolves the job directory shared with the job-queue tool and
// discovers the job output files inside it.
//
// Job files are named by the queue tool with a leading marker (a comma by
// default). Candidates are listed in name order, which is also submission
// order because the queue tool encodes a timestamp in each name.
package jobdir
