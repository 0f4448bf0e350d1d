// Package feed paginates post lists for the index, group, profile and
// follow views. Every feed shows at most PerPage posts per page and an
// out-of-range page request clamps to the nearest valid page.
package feed

import "strconv"

// PerPage is the number of posts shown on every feed page.
const PerPage = 10

// Page describes one page of a feed.
type Page struct {
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	Count       int64 `json:"count"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Paginate resolves the requested page value (usually the raw "page"
// query parameter) against the total item count. A non-numeric value
// becomes page 1; a numeric value outside [1, TotalPages] becomes the
// last page.
func Paginate(requested string, count int64, perPage int) Page {
	if perPage <= 0 {
		perPage = PerPage
	}

	totalPages := int((count + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	number := 1
	if requested != "" {
		n, err := strconv.Atoi(requested)
		switch {
		case err != nil:
			number = 1
		case n < 1 || n > totalPages:
			number = totalPages
		default:
			number = n
		}
	}

	return Page{
		Number:      number,
		TotalPages:  totalPages,
		Count:       count,
		PerPage:     perPage,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}

// Offset returns the database offset for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// NextNumber returns the following page number, for template links.
func (p Page) NextNumber() int {
	return p.Number + 1
}

// PreviousNumber returns the preceding page number, for template links.
func (p Page) PreviousNumber() int {
	return p.Number - 1
}
