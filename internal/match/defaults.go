// File: internal/match/defaults.go
package match

import "github.com/hireloop/autopilot/api/schemas"

// defaultAliases is the built-in alias table covering the labels job boards
// and ATS platforms most commonly put on their forms. Users extend it through
// the alias store; entries here are merged underneath user rows.
var defaultAliases = map[string][]string{
	"full_name":  {"full name", "name", "your name", "legal name"},
	"first_name": {"first name", "given name", "fname", "forename"},
	"last_name":  {"last name", "surname", "family name", "lname"},

	"email": {"email", "email address", "e-mail", "work email", "contact email"},
	"phone": {"phone", "phone number", "mobile", "mobile number", "telephone", "cell phone", "contact number"},

	"address":          {"address", "street address", "address line 1", "home address"},
	"city":             {"city", "town"},
	"state":            {"state", "province", "region", "state province"},
	"country":          {"country", "country region", "nation"},
	"postal_code":      {"postal code", "zip", "zip code", "zip postal code", "postcode"},
	"current_location": {"location", "current location", "where are you located", "where do you live"},

	"linkedin":  {"linkedin", "linkedin url", "linkedin profile", "linkedin profile url"},
	"portfolio": {"portfolio", "website", "personal website", "portfolio url", "portfolio website"},
	"github":    {"github", "github url", "github profile"},

	"job_title":        {"job title", "current title", "current job title", "title", "current role", "position"},
	"current_company":  {"company", "current company", "current employer", "employer", "organization"},
	"years_experience": {"years of experience", "years experience", "total experience", "how many years of experience do you have", "experience years"},
	"desired_salary":   {"desired salary", "expected salary", "salary expectation", "salary expectations", "desired compensation", "expected compensation"},
	"hourly_rate":      {"hourly rate", "desired hourly rate", "expected hourly rate", "rate per hour"},

	"school":          {"school", "university", "college", "institution", "school name"},
	"degree":          {"degree", "highest degree", "education level", "highest education"},
	"major":           {"major", "field of study", "discipline", "area of study"},
	"graduation_date": {"graduation date", "graduation year", "year of graduation", "expected graduation"},

	"start_date":    {"start date", "available start date", "when can you start", "availability", "earliest start date", "available date"},
	"notice_period": {"notice period", "current notice period"},

	"cover_letter": {"cover letter", "covering letter", "why are you interested in this role", "why do you want to work here"},

	"gender":            {"gender", "gender identity", "gender optional"},
	"ethnicity":         {"ethnicity", "race", "race ethnicity", "race and ethnicity"},
	"veteran_status":    {"veteran status", "are you a veteran", "protected veteran status", "veteran status optional"},
	"disability_status": {"disability", "disability status", "do you have a disability"},
}

// DefaultAliases returns the built-in alias table as a flat pair listing, the
// shape the alias store contract uses.
func DefaultAliases() []schemas.AliasPair {
	var pairs []schemas.AliasPair
	for key, aliases := range defaultAliases {
		for _, alias := range aliases {
			pairs = append(pairs, schemas.AliasPair{CanonicalKey: key, Alias: alias})
		}
	}
	return pairs
}
