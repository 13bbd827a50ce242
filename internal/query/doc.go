// Package query answers read-only questions about stored commit histories: which ISO
// week an offset refers to and which task groups an author has for a week.
package query
