// ABOUTME: Wire types for the TalentID candidate API
// ABOUTME: Companies, company details, profiles, and auth payloads

package client

// Company is an entry of the company directory
type Company struct {
	ID          string `json:"_id,omitempty"`
	CompanyName string `json:"companyName"`
	Logo        string `json:"logo,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Address     string `json:"address,omitempty"`
}

// CompanyDetail is the career page payload of GET /api/company/{name}.
// Every field is optional on the wire.
type CompanyDetail struct {
	Logo             string  `json:"logo,omitempty"`
	CompanyName      string  `json:"companyName,omitempty"`
	Address          string  `json:"address,omitempty"`
	Website          string  `json:"website,omitempty"`
	About            string  `json:"about,omitempty"`
	ShortDescription string  `json:"shortDescription,omitempty"`
	ContactPhone     string  `json:"contactPhone,omitempty"`
	ContactEmail     string  `json:"contactEmail,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
	Industry         string  `json:"industry,omitempty"`
	EmployeeCount    int     `json:"employeeCount,omitempty"`
	FoundedYear      int     `json:"foundedYear,omitempty"`
}

// Profile is the candidate profile as returned by the details endpoint
type Profile struct {
	Data ProfileData `json:"data"`
}

// ProfileData holds the candidate fields shown in the header and profile screen
type ProfileData struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// DisplayName returns the candidate name or "User"
func (p *Profile) DisplayName() string {
	if p == nil || p.Data.Name == "" {
		return "User"
	}
	return p.Data.Name
}

// DisplayEmail returns the candidate email or an empty string
func (p *Profile) DisplayEmail() string {
	if p == nil {
		return ""
	}
	return p.Data.Email
}

// Credentials is the candidate-login request body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the candidate-login response body. The token may instead
// arrive as a cookie.
type LoginResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Data    struct {
		Token string `json:"token,omitempty"`
	} `json:"data"`
}

// ResetRequest is the forgot-password request body
type ResetRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	ConfirmPasswordValue string `json:"confirmPasswordValue"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type companiesResponse struct {
	Data []Company `json:"data"`
}

type companyResponse struct {
	Data *CompanyDetail `json:"data"`
}
