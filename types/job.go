package types

import "time"

// Job represents a job posting created by a registered user.
//
// JSON field names follow the public API contract consumed by the web
// frontend (camelCase, e.g. companyName, skillsRequired).
type Job struct {
	// ID is the unique identifier of the posting.
	ID int `json:"id" db:"id"`

	// CompanyName is the name of the hiring company.
	CompanyName string `json:"companyName" db:"company_name"`

	// LogoURL points at the company logo asset, typically produced by
	// the logo upload endpoint.
	LogoURL string `json:"logoUrl" db:"logo_url"`

	// JobPosition is the advertised position title.
	JobPosition string `json:"jobPosition" db:"job_position"`

	// Salary is the offered salary. Searches match it exactly.
	Salary int64 `json:"salary" db:"salary"`

	// JobType is free text such as "full-time", "part-time" or "contract".
	JobType string `json:"jobType" db:"job_type"`

	// RemoteOrOffice is the work mode: "remote", "office" or "hybrid".
	RemoteOrOffice string `json:"remoteOrOffice" db:"remote_or_office"`

	// Location is the job location.
	Location string `json:"location" db:"location"`

	// JobDescription is the free-text description of the role.
	JobDescription string `json:"jobDescription" db:"job_description"`

	// AboutCompany is free text describing the hiring company.
	AboutCompany string `json:"aboutCompany" db:"about_company"`

	// SkillsRequired lists the skills required for the role.
	SkillsRequired []string `json:"skillsRequired" db:"skills_required"`

	// AdditionalInfo is free-text additional information.
	AdditionalInfo string `json:"additionalInfo" db:"additional_info"`

	// UserID references the user who created the posting. It is set once
	// at creation and is the sole basis for mutation authorization.
	UserID int `json:"userId" db:"user_id"`

	// CreatedAt is the timestamp at which the posting was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the posting.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// JobFilter is the optional search criteria for listing postings.
// Zero values mean "no filter"; filters compose conjunctively.
type JobFilter struct {
	// Salary, when > 0, matches postings with exactly this salary.
	Salary int64

	// CompanyName, when non-empty, is a case-insensitive substring match
	// against the posting's company name.
	CompanyName string

	// Skills, when non-empty, matches postings whose skill list contains
	// at least one of the requested skills (case-insensitive).
	Skills []string
}
