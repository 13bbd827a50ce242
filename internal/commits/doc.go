// Package commits defines the commit record harvested from git web front-ends
// and the helpers shared by the scraper, the author store, and the task grouper.
package commits
