// Package storage selects a persistence driver for the quote collection,
// preferences and the conflict audit log.
package storage
