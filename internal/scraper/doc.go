// Package scraper fetches the FrontDesk time selection page and parses it
// for dates with available appointment slots.
//
// The page carries no machine-readable availability markup, so the parser
// works from two heuristics: date headings in a fixed textual format, and a
// negative match on the phrase "No more available time slots" in the text
// that follows each heading. Anything not explicitly saying "no slots" is
// treated as having slots; false positives are preferred over missing a
// real opening.
package scraper
