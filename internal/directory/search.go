// ABOUTME: View state of the header search box and its results dropdown
// ABOUTME: Typing filters, focus lists everything, selecting navigates to a career page

package directory

import (
	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/routes"
)

// Search is the header search state. The dropdown is open while Results is
// non-empty.
type Search struct {
	query   string
	results []client.Company
	cursor  int
}

func (s *Search) Query() string { return s.query }

func (s *Search) Results() []client.Company { return s.results }

func (s *Search) Cursor() int { return s.cursor }

// Open reports whether the dropdown is showing
func (s *Search) Open() bool { return len(s.results) > 0 }

// SetQuery updates the query and recomputes the results
func (s *Search) SetQuery(query string, companies []client.Company) {
	s.query = query
	s.results = Filter(query, companies)
	s.clampCursor()
}

// Focus opens the dropdown with OnFocus results
func (s *Search) Focus(companies []client.Company) {
	s.results = OnFocus(s.query, companies)
	s.clampCursor()
}

// Dismiss closes the dropdown (click outside). The query is kept.
func (s *Search) Dismiss() {
	s.results = nil
	s.cursor = 0
}

// Move shifts the highlighted result by delta, wrapping around
func (s *Search) Move(delta int) {
	n := len(s.results)
	if n == 0 {
		return
	}
	s.cursor = ((s.cursor+delta)%n + n) % n
}

// Select picks result i, clears query and results, and returns the career
// route for it. ok is false when i is out of range.
func (s *Search) Select(i int) (company client.Company, route routes.Route, ok bool) {
	if i < 0 || i >= len(s.results) {
		return client.Company{}, "", false
	}
	company = s.results[i]
	s.query = ""
	s.results = nil
	s.cursor = 0
	return company, routes.CareerPath(company.CompanyName), true
}

// SelectCurrent selects the highlighted result
func (s *Search) SelectCurrent() (client.Company, routes.Route, bool) {
	return s.Select(s.cursor)
}

func (s *Search) clampCursor() {
	if s.cursor >= len(s.results) {
		s.cursor = 0
	}
}
