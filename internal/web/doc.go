// Package web exposes the query surface as a read-only HTTP API.
package web
