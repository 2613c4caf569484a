// Package config loads, normalizes, and validates fq configuration data.
//
// It supplies defaults, reads an optional TOML file, and honours the NQDIR
// environment variable shared with the job-queue tool. The job directory is
// expanded to an absolute path here; whether it exists is checked by the
// jobdir package at startup.
package config
