// Package recordid formats the human-readable record numbers assigned to
// submitted documents: SR-YYYYMMDD-NNNN, with NNNN a 1-indexed sequence among
// the records created on the same calendar day.
//
// Generate is a pure formatting helper. It is deterministic given the day and
// the count of prior same-day records, but it is NOT safe against two callers
// reading the same count concurrently. Day-scoped uniqueness is enforced by
// the persistence layer (unique index on record_number); the service retries
// with a fresh count on conflict.
package recordid

import (
	"fmt"
	"time"
)

// Prefix is the constant leading segment of every record number.
const Prefix = "SR"

// Generate returns the record number for the next record of the given day,
// where existing is the count of records already created that day. The first
// record of a day is -0001. The sequence is zero-padded to 4 digits and grows
// wider past 9999 rather than wrapping.
//
// A negative count is a contract violation; callers must validate upstream.
func Generate(day time.Time, existing int) string {
	return fmt.Sprintf("%s-%04d", DayPrefix(day), existing+1)
}

// DayPrefix returns the SR-YYYYMMDD segment shared by all record numbers of
// the given day. Repositories use it to count a day's records.
func DayPrefix(day time.Time) string {
	return fmt.Sprintf("%s-%s", Prefix, day.Format("20060102"))
}
