// ABOUTME: Client-side company search over the loaded directory
// ABOUTME: Case-insensitive substring match on company names, input order kept

package directory

import (
	"strings"

	"github.com/Talentid15/Candidate/internal/client"
)

// Filter returns the companies whose name contains query, ignoring case.
// An empty query matches nothing.
func Filter(query string, companies []client.Company) []client.Company {
	out := []client.Company{}
	if query == "" {
		return out
	}
	q := strings.ToLower(query)
	for _, c := range companies {
		if strings.Contains(strings.ToLower(c.CompanyName), q) {
			out = append(out, c)
		}
	}
	return out
}

// OnFocus lists what the dropdown shows when the search box gains focus: the
// whole directory for an empty query, the filtered list otherwise.
func OnFocus(query string, companies []client.Company) []client.Company {
	if query == "" {
		out := make([]client.Company, len(companies))
		copy(out, companies)
		return out
	}
	return Filter(query, companies)
}
