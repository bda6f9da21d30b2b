// ABOUTME: Display model of a company career page
// ABOUTME: Every field is populated; placeholders stand in for missing data

package career

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/Talentid15/Candidate/internal/client"
)

// DefaultLogo marks a page that has no logo of its own
const DefaultLogo = "default-logo"

// Placeholder values
const (
	UnknownCompany  = "Unknown Company"
	NoLocation      = "Location not specified"
	UnknownHQ       = "Unknown"
	NoWebsite       = "#"
	NoDescription   = "No description available."
	NoContact       = "N/A"
	DefaultRating   = 4.0
	UnknownIndustry = "Unknown"

	mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="
)

// Page is what the career screen renders
type Page struct {
	Logo             string  `json:"logo"`
	CompanyName      string  `json:"companyName"`
	Address          string  `json:"address"`
	HQLocation       string  `json:"hqLocation"`
	Website          string  `json:"website"`
	About            string  `json:"about"`
	ShortDescription string  `json:"shortDescription"`
	ContactPhone     string  `json:"contactPhone"`
	ContactEmail     string  `json:"contactEmail"`
	Rating           float64 `json:"rating"`
	Industry         string  `json:"industry"`
	EmployeeCount    int     `json:"employeeCount"`
	FoundedYear      int     `json:"foundedYear"`
}

// Placeholder is the page shown before data arrives and when loading fails
func Placeholder(name string) Page {
	display := name
	if display == "" {
		display = UnknownCompany
	}
	return Page{
		Logo:             DefaultLogo,
		CompanyName:      display,
		Address:          NoLocation,
		HQLocation:       UnknownHQ,
		Website:          NoWebsite,
		About:            aboutFallback(name),
		ShortDescription: NoDescription,
		ContactPhone:     NoContact,
		ContactEmail:     NoContact,
		Rating:           DefaultRating,
		Industry:         UnknownIndustry,
	}
}

// FromDetail overlays the non-empty fields of detail onto the placeholder for
// name. The headquarters mirror the address.
func FromDetail(name string, detail *client.CompanyDetail) Page {
	p := Placeholder(name)
	if detail == nil {
		return p
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Logo, detail.Logo)
	set(&p.CompanyName, detail.CompanyName)
	set(&p.Address, detail.Address)
	set(&p.HQLocation, detail.Address)
	set(&p.Website, detail.Website)
	set(&p.ShortDescription, detail.ShortDescription)
	set(&p.ContactPhone, detail.ContactPhone)
	set(&p.ContactEmail, detail.ContactEmail)
	set(&p.Industry, detail.Industry)

	if detail.About != "" {
		p.About = detail.About
	} else if detail.CompanyName != "" {
		p.About = aboutFallback(detail.CompanyName)
	}
	if detail.Rating > 0 {
		p.Rating = detail.Rating
	}
	if detail.EmployeeCount > 0 {
		p.EmployeeCount = detail.EmployeeCount
	}
	if detail.FoundedYear > 0 {
		p.FoundedYear = detail.FoundedYear
	}
	return p
}

func aboutFallback(name string) string {
	if name == "" {
		name = "this company"
	}
	return fmt.Sprintf("No information available about %s.", name)
}

// FilledStars is the rating rounded to whole stars, 0 to 5
func (p Page) FilledStars() int {
	rating := p.Rating
	if rating == 0 {
		rating = DefaultRating
	}
	n := int(math.Round(rating))
	return max(0, min(5, n))
}

// Stars renders five star slots
func (p Page) Stars() string {
	n := p.FilledStars()
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// RatingLabel formats the rating with one decimal, e.g. "4.0"
func (p Page) RatingLabel() string {
	rating := p.Rating
	if rating == 0 {
		rating = DefaultRating
	}
	return fmt.Sprintf("%.1f", rating)
}

var schemePrefix = regexp.MustCompile(`^https?://`)

// WebsiteLabel is the website without its http(s) scheme
func (p Page) WebsiteLabel() string {
	return schemePrefix.ReplaceAllString(p.Website, "")
}

// HasWebsite reports whether the website is a real link
func (p Page) HasWebsite() bool {
	return p.Website != "" && p.Website != NoWebsite
}

// HasLogo reports whether the company supplied its own logo
func (p Page) HasLogo() bool {
	return p.Logo != "" && p.Logo != DefaultLogo
}

// MapsURL is a Google Maps search for the address
func (p Page) MapsURL() string {
	return mapsSearchURL + strings.ReplaceAll(url.QueryEscape(p.Address), "+", "%20")
}

// MailTo is the mailto link of the contact email, empty when there is none
func (p Page) MailTo() string {
	if p.ContactEmail == "" || p.ContactEmail == NoContact {
		return ""
	}
	return "mailto:" + p.ContactEmail
}

// Countries estimates the reach shown in the highlights
func (p Page) Countries() int {
	n := int(math.Ceil(float64(p.EmployeeCount) / 100))
	if n <= 0 {
		return 1
	}
	return n
}

// Highlights are the three lines of the highlights section
func (p Page) Highlights() []string {
	industry := p.Industry
	if industry == "" {
		industry = "its field"
	}
	since := "its founding"
	if p.FoundedYear > 0 {
		since = fmt.Sprintf("%d", p.FoundedYear)
	}
	return []string{
		fmt.Sprintf("Recognized as a leader in %s by industry analysts.", industry),
		fmt.Sprintf("Serving clients in over %d countries.", p.Countries()),
		fmt.Sprintf("Committed to sustainability and innovation since %s.", since),
	}
}
