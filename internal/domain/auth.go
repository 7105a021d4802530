package domain

// SubjectType differentiates student, technician and admin tokens.
type SubjectType string

const (
	SubjectTypeStudent    SubjectType = "STUDENT"
	SubjectTypeTechnician SubjectType = "TECHNICIAN"
	SubjectTypeAdmin      SubjectType = "ADMIN"
)
