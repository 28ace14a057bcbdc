// Package process manages the lifetime of external renderer processes:
// process-group setup before start and tree kill on cancellation.
package process
