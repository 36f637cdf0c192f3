package schemas

// -- Applicant Profile Schemas --
//
// The profile is the structured user record consumed by the value resolver.
// Sub-objects are optional; the resolver treats missing data as empty strings.

// PersonName holds the applicant's name parts.
type PersonName struct {
	First string `json:"first" yaml:"first"`
	Last  string `json:"last" yaml:"last"`
}

// Contact holds reachable contact details. PhoneCode/PhoneNumber are the
// structured form; Phone is a raw fallback used when the parts are absent.
type Contact struct {
	Email       string `json:"email" yaml:"email"`
	Phone       string `json:"phone,omitempty" yaml:"phone"`
	PhoneCode   string `json:"phoneCode,omitempty" yaml:"phone_code"`
	PhoneNumber string `json:"phoneNumber,omitempty" yaml:"phone_number"`
}

// Location holds the applicant's address details.
type Location struct {
	Address    string `json:"address,omitempty" yaml:"address"`
	City       string `json:"city,omitempty" yaml:"city"`
	State      string `json:"state,omitempty" yaml:"state"`
	Country    string `json:"country,omitempty" yaml:"country"`
	PostalCode string `json:"postalCode,omitempty" yaml:"postal_code"`
}

// Links holds public profile URLs.
type Links struct {
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin"`
	Portfolio string `json:"portfolio,omitempty" yaml:"portfolio"`
	GitHub    string `json:"github,omitempty" yaml:"github"`
}

// Career holds current-role and compensation details. YearsExperience and
// DesiredSalary are free-form strings as users enter them; numeric parsing
// happens in the resolver.
type Career struct {
	Title           string `json:"title,omitempty" yaml:"title"`
	Company         string `json:"company,omitempty" yaml:"company"`
	YearsExperience string `json:"yearsExperience,omitempty" yaml:"years_experience"`
	DesiredSalary   string `json:"desiredSalary,omitempty" yaml:"desired_salary"`
	NoticePeriod    string `json:"noticePeriod,omitempty" yaml:"notice_period"`
}

// Education holds the most recent education record.
type Education struct {
	School         string `json:"school,omitempty" yaml:"school"`
	Degree         string `json:"degree,omitempty" yaml:"degree"`
	Major          string `json:"major,omitempty" yaml:"major"`
	GraduationDate string `json:"graduationDate,omitempty" yaml:"graduation_date"`
}

// Profile is the full applicant record supplied by the profile store.
// Read-only to the autofill core.
type Profile struct {
	Name      PersonName `json:"name" yaml:"name"`
	Contact   Contact    `json:"contact" yaml:"contact"`
	Location  Location   `json:"location" yaml:"location"`
	Links     Links      `json:"links" yaml:"links"`
	Career    Career     `json:"career" yaml:"career"`
	Education Education  `json:"education" yaml:"education"`
}

// JobContext carries page-derived context about the posting being applied to.
// Supplied by the optional classifier collaborator; all fields may be empty.
type JobContext struct {
	Title    string `json:"title,omitempty" yaml:"title"`
	Company  string `json:"company,omitempty" yaml:"company"`
	Employer string `json:"employer,omitempty" yaml:"employer"`
	URL      string `json:"url,omitempty" yaml:"url"`
}
