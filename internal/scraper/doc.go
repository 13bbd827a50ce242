// Package scraper fetches repository, branch, and commit listing pages from
// git web front-ends and turns them into commit records.
//
// HTML extraction sits behind RowExtractor, one method per row type, so the
// markup selectors and the parsing library stay isolated from pagination,
// recency, and transport concerns. Commit listings are expected to be
// reverse-chronological: the first row outside the recency window ends the
// scan of a branch.
package scraper
