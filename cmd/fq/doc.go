// Package main hosts the fq CLI entrypoint.
//
// fq follows the output files of queued background jobs and exits once the
// jobs finish. The Cobra root command resolves configuration and the job
// directory, discovers candidates when no job IDs are given, and hands them
// to a follow.Session writing to stdout. Diagnostics go to stderr.
package main
