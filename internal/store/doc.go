// Package store persists harvested commits as one JSON snapshot per author.
package store
