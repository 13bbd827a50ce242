// Package dates converts the human-readable date labels shown on commit
// listings into canonical dates, decides whether a label falls inside the
// recency window, and derives ISO-8601 week identifiers.
package dates
