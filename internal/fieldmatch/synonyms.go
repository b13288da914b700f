package fieldmatch

// synonymEntry pairs a canonical key with its synonym phrases. Phrases are
// lowercase with single spaces.
type synonymEntry struct {
	key      Key
	synonyms []string
}

// synonymTable is scanned in order by both match passes, so an earlier entry
// wins whenever two keys could claim the same label. Do not reorder.
var synonymTable = []synonymEntry{
	// identity / contact
	{FirstName, []string{"first name", "given name", "forename", "fname", "first_name", "legal first name", "preferred first name"}},
	{MiddleName, []string{"middle name", "middle initial", "mname", "middle_name"}},
	{LastName, []string{"last name", "surname", "family name", "lname", "last_name", "legal last name"}},
	{FullName, []string{"full name", "your name", "legal name", "candidate name", "applicant name", "full_name", "fullname"}},
	{PreferredName, []string{"preferred name", "nickname", "goes by", "known as"}},
	{Email, []string{"email", "email address", "e-mail", "e_mail", "electronic mail", "contact email", "personal email", "work email"}},
	{Phone, []string{"phone", "phone number", "mobile", "mobile number", "cell", "cell phone", "telephone", "contact number", "primary phone", "mobile phone", "tel"}},

	// address / location
	{AddressStreet, []string{"street address", "address line 1", "address line", "street", "mailing address", "home address", "residential address"}},
	{AddressLine2, []string{"address line 2", "apt", "apartment", "suite", "unit", "floor"}},
	{LocationCity, []string{"city", "current city", "home city", "city of residence"}},
	{LocationState, []string{"state", "province", "region", "state/province"}},
	{LocationZip, []string{"zip", "zip code", "postal code", "zipcode", "postcode"}},
	{LocationCountry, []string{"country", "country of residence", "nation"}},
	{CurrentLocation, []string{"current location", "location", "where are you located", "where do you currently reside"}},

	// social / links
	{LinkedInURL, []string{"linkedin", "linkedin profile", "linkedin url", "linkedin link", "linkedin.com"}},
	{GitHubURL, []string{"github", "github profile", "github url", "github link", "github.com", "github username"}},
	{PortfolioURL, []string{"portfolio", "portfolio url", "portfolio link", "personal website", "website", "personal site", "work samples"}},
	{TwitterURL, []string{"twitter", "twitter handle", "twitter profile", "x profile"}},
	{PersonalWebsite, []string{"personal website", "blog", "personal blog", "homepage"}},

	// current employment
	{CurrentTitle, []string{"current title", "current role", "current position", "current job title", "present title", "present role", "what is your current role", "what is your current title", "job title", "title"}},
	{CurrentCompany, []string{"current company", "current employer", "current organization", "present company", "present employer", "where do you currently work", "employer", "company name", "organization"}},
	{CurrentCompanyStart, []string{"start date at current", "when did you start", "date started current"}},

	// previous employment
	{PreviousTitle, []string{"previous title", "previous role", "previous position", "past title", "last title", "former title", "most recent title"}},
	{PreviousCompany, []string{"previous company", "previous employer", "past company", "last company", "former company", "former employer", "most recent company"}},

	// experience
	{YearsOfExperience, []string{"years of experience", "total experience", "experience years", "how many years", "professional experience", "work experience years", "total years of experience", "yoe"}},
	{RelevantExperience, []string{"relevant experience", "related experience", "applicable experience"}},
	{WorkHistory, []string{"work history", "employment history", "job history", "career history"}},

	// skills
	{Skills, []string{"skills", "technical skills", "key skills", "core skills", "skillset", "skill set", "competencies"}},
	{ProgrammingLanguages, []string{"programming languages", "coding languages", "languages you know", "what languages do you know"}},
	{FrontendSkills, []string{"frontend", "front end", "front-end", "frontend skills", "frontend technologies", "frontend frameworks", "ui technologies"}},
	{BackendSkills, []string{"backend", "back end", "back-end", "backend skills", "backend technologies", "backend frameworks", "server side"}},
	{CloudPlatforms, []string{"cloud", "cloud platforms", "cloud experience", "cloud services", "aws", "azure", "gcp", "cloud computing"}},
	{Databases, []string{"databases", "database technologies", "db experience", "database experience", "sql", "nosql"}},
	{DevOpsTools, []string{"devops", "ci/cd", "infrastructure", "devops tools", "deployment", "containerization", "kubernetes", "docker"}},
	{TestingTools, []string{"testing", "test frameworks", "qa tools", "testing tools"}},

	// education
	{HighestDegree, []string{"highest degree", "degree", "education level", "qualification", "highest qualification", "degree earned"}},
	{FieldOfStudy, []string{"field of study", "major", "concentration", "specialization", "area of study", "subject"}},
	{Institution, []string{"school", "university", "college", "institution", "educational institution", "school name", "university name"}},
	{GraduationYear, []string{"graduation year", "year graduated", "grad year", "year of graduation", "completion year"}},
	{GPA, []string{"gpa", "grade point average", "grades", "cgpa", "academic score"}},

	// work authorization
	{VisaStatus, []string{"visa status", "immigration status", "visa type", "current visa", "work visa"}},
	{RequiresSponsorship, []string{"require sponsorship", "requires sponsorship", "need sponsorship", "sponsorship required", "visa sponsorship", "work sponsorship", "will you require sponsorship", "do you require sponsorship", "need visa sponsorship"}},
	{AuthorizedToWork, []string{"authorized to work", "work authorization", "legally authorized", "eligible to work", "right to work", "work permit", "are you authorized to work", "legally eligible"}},
	{Citizenship, []string{"citizenship", "citizen", "nationality", "country of citizenship"}},

	// availability / relocation
	{RelocationWillingness, []string{"willing to relocate", "relocation", "open to relocation", "can you relocate", "would you relocate", "relocation preference"}},
	{RemotePreference, []string{"remote", "remote work", "work from home", "wfh", "hybrid", "on-site preference", "work arrangement"}},
	{NoticePeriod, []string{"notice period", "availability", "when can you start", "start date", "available to start", "earliest start date", "how soon can you start", "joining date"}},
	{AvailableHours, []string{"available hours", "hours per week", "availability hours"}},

	// compensation
	{SalaryExpectation, []string{"salary expectation", "expected salary", "desired salary", "salary requirement", "compensation expectation", "what are your salary expectations", "target salary"}},
	{CurrentSalary, []string{"current salary", "present salary", "current compensation", "current ctc", "existing salary"}},
	{Currency, []string{"currency", "salary currency", "preferred currency"}},

	// voluntary disclosures
	{Gender, []string{"gender", "sex", "gender identity", "what is your gender"}},
	{RaceEthnicity, []string{"race", "ethnicity", "race/ethnicity", "ethnic background", "racial background"}},
	{VeteranStatus, []string{"veteran", "veteran status", "military service", "are you a veteran", "military veteran", "armed forces"}},
	{DisabilityStatus, []string{"disability", "disability status", "disabled", "do you have a disability", "physical disability"}},
	{LGBTQStatus, []string{"lgbtq", "sexual orientation", "lgbtq+"}},

	// referral / source
	{ReferralSource, []string{"how did you hear", "referral source", "source", "where did you find", "job source", "how did you find us", "how did you learn about"}},
	{ReferralName, []string{"referral name", "referred by", "referrer name", "who referred you", "employee referral"}},

	// essays
	{CoverLetter, []string{"cover letter", "letter of interest", "introduction letter"}},
	{WhyInterested, []string{"why are you interested", "why this company", "why do you want", "what interests you", "why apply", "motivation"}},
	{WhyQualified, []string{"why are you qualified", "why should we hire", "what makes you a good fit", "qualifications"}},
	{AdditionalInfo, []string{"additional information", "anything else", "other information", "comments", "notes", "additional comments"}},
}
