// Package types provides type definitions for structured data used throughout the resume-review system.
package types

import "time"

// ResumeModel is the canonical, versioned representation of one resume.
// It is persisted as a whole JSON blob under resume_model:{id} and mutated
// in place by the optimization workflow.
type ResumeModel struct {
	ID               string    `json:"id"`
	Version          int       `json:"version"`
	LastModified     time.Time `json:"lastModified"`
	OriginalResumeID string    `json:"originalResumeId,omitempty"`

	PersonalInfo PersonalInfo        `json:"personalInfo"`
	Summary      ProfessionalSummary `json:"summary"`
	Experience   []WorkExperience    `json:"experience"`
	Skills       SkillsSection       `json:"skills"`
	Education    []Education         `json:"education"`
	Projects     []Project           `json:"projects"`

	Optimization OptimizationMetadata `json:"optimization"`
}

// PersonalInfo holds flat contact fields. Empty string means unknown.
type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedIn,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
}

// ProfessionalSummary is the summary section of a resume.
type ProfessionalSummary struct {
	Content           string   `json:"content"`
	KeyStrengths      []string `json:"keyStrengths"`
	TargetRole        string   `json:"targetRole,omitempty"`
	YearsOfExperience int      `json:"yearsOfExperience,omitempty"`
}

// WorkExperience is one employment entry.
type WorkExperience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies,omitempty"`
	IsRelevant   bool     `json:"isRelevant"`
}

// SkillsSection groups skills for better ATS parsing.
type SkillsSection struct {
	Technical      []TechnicalSkill `json:"technical"`
	Soft           []string         `json:"soft"`
	Certifications []Certification  `json:"certifications"`
	Languages      []Language       `json:"languages"`
}

// TechnicalSkill is a named, categorized technical skill.
type TechnicalSkill struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency,omitempty"`
	IsRelevant  bool   `json:"isRelevant"`
}

// Certification is a professional certification entry.
type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	DateObtained string `json:"dateObtained"`
	IsRelevant   bool   `json:"isRelevant"`
}

// Language is a spoken language with proficiency level.
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// Education is one education entry.
type Education struct {
	ID          string   `json:"id"`
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	GPA         string   `json:"gpa,omitempty"`
	Honors      []string `json:"honors,omitempty"`
	IsRelevant  bool     `json:"isRelevant"`
}

// Project is one project entry.
type Project struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Technologies   []string `json:"technologies"`
	Achievements   []string `json:"achievements"`
	URL            string   `json:"url,omitempty"`
	RelevanceScore float64  `json:"relevanceScore,omitempty"`
}

// ResumeRecord is the legacy persisted record for one uploaded resume,
// stored under resume:{id}. Feedback holds the flat AI critique once parsed.
type ResumeRecord struct {
	ID             string    `json:"id"`
	ResumePath     string    `json:"resumePath"`
	ImagePath      string    `json:"imagePath"`
	CompanyName    string    `json:"companyName"`
	JobTitle       string    `json:"jobTitle"`
	JobDescription string    `json:"jobDescription"`
	Feedback       *Feedback `json:"feedback,omitempty"`
}
