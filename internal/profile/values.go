// File: internal/profile/values.go
package profile

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/hireloop/autopilot/api/schemas"
)

// ValueMap maps a canonical field key to its resolved string value. Keys that
// cannot be resolved are present with an empty string, which the plan builder
// treats as "no value available". Built fresh per autofill request and never
// mutated afterwards.
type ValueMap map[string]string

// Canonical field keys resolvable from the profile. Kept in one place so the
// value map, alias defaults, and safe-field plan stay in agreement.
const (
	KeyFullName        = "full_name"
	KeyFirstName       = "first_name"
	KeyLastName        = "last_name"
	KeyEmail           = "email"
	KeyPhone           = "phone"
	KeyAddress         = "address"
	KeyCity            = "city"
	KeyState           = "state"
	KeyCountry         = "country"
	KeyPostalCode      = "postal_code"
	KeyCurrentLocation = "current_location"
	KeyLinkedIn        = "linkedin"
	KeyPortfolio       = "portfolio"
	KeyGitHub          = "github"
	KeyJobTitle        = "job_title"
	KeyCurrentCompany  = "current_company"
	KeyYearsExperience = "years_experience"
	KeyDesiredSalary   = "desired_salary"
	KeyHourlyRate      = "hourly_rate"
	KeySchool          = "school"
	KeyDegree          = "degree"
	KeyMajor           = "major"
	KeyGraduationDate  = "graduation_date"
	KeyStartDate       = "start_date"
	KeyNoticePeriod    = "notice_period"
	KeyGender          = "gender"
	KeyEthnicity       = "ethnicity"
	KeyVeteranStatus   = "veteran_status"
	KeyDisability      = "disability_status"
)

// Fixed answers for questions that have a sensible universal default. EEO
// style questions default to the decline-to-answer option; availability
// defaults assume a standard employed applicant.
const (
	defaultEEOAnswer    = "Prefer not to say"
	defaultStartDate    = "Immediately"
	defaultNoticePeriod = "2 weeks"
)

// BuildValueMap resolves every canonical key from the applicant profile and
// job context. Pure function: no I/O, no mutation of its inputs.
func BuildValueMap(p schemas.Profile, job schemas.JobContext) ValueMap {
	company := p.Career.Company
	if company == "" {
		// Fall back to classifier-supplied context when the profile has no
		// current company.
		if job.Company != "" {
			company = job.Company
		} else {
			company = job.Employer
		}
	}

	notice := p.Career.NoticePeriod
	if notice == "" {
		notice = defaultNoticePeriod
	}

	return ValueMap{
		KeyFullName:        FullName(p.Name),
		KeyFirstName:       strings.TrimSpace(p.Name.First),
		KeyLastName:        strings.TrimSpace(p.Name.Last),
		KeyEmail:           strings.TrimSpace(p.Contact.Email),
		KeyPhone:           FormatPhone(p.Contact),
		KeyAddress:         strings.TrimSpace(p.Location.Address),
		KeyCity:            strings.TrimSpace(p.Location.City),
		KeyState:           strings.TrimSpace(p.Location.State),
		KeyCountry:         strings.TrimSpace(p.Location.Country),
		KeyPostalCode:      strings.TrimSpace(p.Location.PostalCode),
		KeyCurrentLocation: CurrentLocation(p.Location),
		KeyLinkedIn:        strings.TrimSpace(p.Links.LinkedIn),
		KeyPortfolio:       strings.TrimSpace(p.Links.Portfolio),
		KeyGitHub:          strings.TrimSpace(p.Links.GitHub),
		KeyJobTitle:        strings.TrimSpace(p.Career.Title),
		KeyCurrentCompany:  strings.TrimSpace(company),
		KeyYearsExperience: strings.TrimSpace(p.Career.YearsExperience),
		KeyDesiredSalary:   strings.TrimSpace(p.Career.DesiredSalary),
		KeyHourlyRate:      HourlyRate(p.Career.DesiredSalary),
		KeySchool:          strings.TrimSpace(p.Education.School),
		KeyDegree:          strings.TrimSpace(p.Education.Degree),
		KeyMajor:           strings.TrimSpace(p.Education.Major),
		KeyGraduationDate:  strings.TrimSpace(p.Education.GraduationDate),
		KeyStartDate:       defaultStartDate,
		KeyNoticePeriod:    notice,
		KeyGender:          defaultEEOAnswer,
		KeyEthnicity:       defaultEEOAnswer,
		KeyVeteranStatus:   defaultEEOAnswer,
		KeyDisability:      defaultEEOAnswer,
	}
}

// FullName joins the name parts, tolerating either being absent.
func FullName(n schemas.PersonName) string {
	return strings.TrimSpace(strings.TrimSpace(n.First) + " " + strings.TrimSpace(n.Last))
}

// FormatPhone renders the contact phone. When both the code and number parts
// exist the result is "{code} {number}"; otherwise the raw phone string is
// returned with internal whitespace collapsed.
func FormatPhone(c schemas.Contact) string {
	code := strings.TrimSpace(c.PhoneCode)
	number := strings.TrimSpace(c.PhoneNumber)
	if code != "" && number != "" {
		return code + " " + number
	}
	if number != "" {
		return number
	}
	return strings.Join(strings.Fields(c.Phone), " ")
}

// CurrentLocation derives "city, state, country" with missing parts omitted.
func CurrentLocation(l schemas.Location) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.State, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// HourlyRate estimates an hourly rate from an annual salary string as
// floor(annual / 12 / 160). Returns "" unless a positive numeric salary can
// be parsed. Parsing strips thousands separators, currency symbols, and any
// other non-numeric characters; a decimal point truncates (annual salaries
// do not need cents).
func HourlyRate(annualSalary string) string {
	digits := extractDigits(annualSalary)
	if digits == "" {
		return ""
	}
	annual, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || annual <= 0 {
		return ""
	}
	return strconv.FormatInt(annual/12/160, 10)
}

// extractDigits keeps the integer part of the first number in s, ignoring
// separators. "120,000.50" yields "120000".
func extractDigits(s string) string {
	var sb strings.Builder
	seen := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
			seen = true
			continue
		}
		if r == ',' || r == ' ' {
			continue // thousands separators
		}
		if seen {
			// Stop at the decimal point or any trailing text.
			break
		}
	}
	return sb.String()
}
