package fieldmatch

// Key is a canonical semantic field identifier, independent of how a site
// labels its field.
type Key string

// Canonical keys. The set is closed; see synonymTable for matching order.
const (
	FirstName     Key = "first_name"
	MiddleName    Key = "middle_name"
	LastName      Key = "last_name"
	FullName      Key = "full_name"
	PreferredName Key = "preferred_name"
	Email         Key = "email"
	Phone         Key = "phone"

	AddressStreet   Key = "address_street"
	AddressLine2    Key = "address_line2"
	LocationCity    Key = "location_city"
	LocationState   Key = "location_state"
	LocationZip     Key = "location_zip"
	LocationCountry Key = "location_country"
	CurrentLocation Key = "current_location"

	LinkedInURL     Key = "linkedin_url"
	GitHubURL       Key = "github_url"
	PortfolioURL    Key = "portfolio_url"
	TwitterURL      Key = "twitter_url"
	PersonalWebsite Key = "personal_website"

	CurrentTitle        Key = "current_title"
	CurrentCompany      Key = "current_company"
	CurrentCompanyStart Key = "current_company_start"
	PreviousTitle       Key = "previous_title"
	PreviousCompany     Key = "previous_company"

	YearsOfExperience  Key = "years_of_experience"
	RelevantExperience Key = "relevant_experience"
	WorkHistory        Key = "work_history"

	Skills               Key = "skills"
	ProgrammingLanguages Key = "programming_languages"
	FrontendSkills       Key = "frontend_skills"
	BackendSkills        Key = "backend_skills"
	CloudPlatforms       Key = "cloud_platforms"
	Databases            Key = "databases"
	DevOpsTools          Key = "devops_tools"
	TestingTools         Key = "testing_tools"

	HighestDegree  Key = "highest_degree"
	FieldOfStudy   Key = "field_of_study"
	Institution    Key = "institution"
	GraduationYear Key = "graduation_year"
	GPA            Key = "gpa"

	VisaStatus          Key = "visa_status"
	RequiresSponsorship Key = "requires_sponsorship"
	AuthorizedToWork    Key = "authorized_to_work"
	Citizenship         Key = "citizenship"

	RelocationWillingness Key = "relocation_willingness"
	RemotePreference      Key = "remote_preference"
	NoticePeriod          Key = "notice_period"
	AvailableHours        Key = "available_hours"

	SalaryExpectation Key = "salary_expectation"
	CurrentSalary     Key = "current_salary"
	Currency          Key = "currency"

	Gender           Key = "gender"
	RaceEthnicity    Key = "race_ethnicity"
	VeteranStatus    Key = "veteran_status"
	DisabilityStatus Key = "disability_status"
	LGBTQStatus      Key = "lgbtq_status"

	ReferralSource Key = "referral_source"
	ReferralName   Key = "referral_name"

	CoverLetter    Key = "cover_letter"
	WhyInterested  Key = "why_interested"
	WhyQualified   Key = "why_qualified"
	AdditionalInfo Key = "additional_info"
)

// ValueType is the shape a canonical key's value is expected to have.
type ValueType string

// Value types checked by IsValid.
const (
	TypeURL     ValueType = "url"
	TypeEmail   ValueType = "email"
	TypePhone   ValueType = "phone"
	TypeName    ValueType = "name"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeText    ValueType = "text"
)

// valueTypes lists every key whose type is not text.
var valueTypes = map[Key]ValueType{
	LinkedInURL:     TypeURL,
	GitHubURL:       TypeURL,
	PortfolioURL:    TypeURL,
	TwitterURL:      TypeURL,
	PersonalWebsite: TypeURL,

	Email: TypeEmail,
	Phone: TypePhone,

	FirstName:     TypeName,
	MiddleName:    TypeName,
	LastName:      TypeName,
	FullName:      TypeName,
	PreferredName: TypeName,
	ReferralName:  TypeName,

	YearsOfExperience: TypeNumber,
	GPA:               TypeNumber,
	GraduationYear:    TypeNumber,
	SalaryExpectation: TypeNumber,
	CurrentSalary:     TypeNumber,
	AvailableHours:    TypeNumber,

	RequiresSponsorship:   TypeBoolean,
	AuthorizedToWork:      TypeBoolean,
	RelocationWillingness: TypeBoolean,
	RemotePreference:      TypeBoolean,
}

var knownKeys = func() map[Key]bool {
	known := make(map[Key]bool, len(synonymTable))
	for _, entry := range synonymTable {
		known[entry.key] = true
	}
	return known
}()

// TypeOf returns the expected value type for a key. Unknown and empty keys are text.
func TypeOf(key Key) ValueType {
	if t, ok := valueTypes[key]; ok {
		return t
	}
	return TypeText
}

// Keys returns the canonical vocabulary in matching order.
func Keys() []Key {
	keys := make([]Key, 0, len(synonymTable))
	for _, entry := range synonymTable {
		keys = append(keys, entry.key)
	}
	return keys
}

// IsKnown reports whether key belongs to the canonical vocabulary.
func IsKnown(key Key) bool {
	return knownKeys[key]
}

// Synonyms returns a copy of the synonym phrases for key.
func Synonyms(key Key) []string {
	for _, entry := range synonymTable {
		if entry.key == key {
			return append([]string(nil), entry.synonyms...)
		}
	}
	return nil
}
