// Package harvest scans every branch of every repository exposed by the configured
// git web front-ends and collects their recent commits keyed by repository.
package harvest
