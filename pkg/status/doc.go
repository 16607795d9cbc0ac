/*
Package status classifies what happened to each target file in a batch.

A target is one of:
  - created: it did not exist before the run
  - overwritten: it existed with different bytes and was replaced
  - unchanged: it existed with the same bytes (a re-run)
  - failed: the source could not be read, validated or written

The classification is reporting only. Every successful pair is written
regardless of its status, so a re-run rewrites identical content.
*/
package status
