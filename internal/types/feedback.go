package types

// Tip types returned by the analysis model.
const (
	TipGood    = "good"
	TipImprove = "improve"
)

// Tip is a single piece of category feedback. The ATS category omits
// Explanation; the other categories include it.
type Tip struct {
	Type        string `json:"type"`
	Tip         string `json:"tip"`
	Explanation string `json:"explanation,omitempty"`
}

// CategoryFeedback is one scored feedback category with its tips.
type CategoryFeedback struct {
	Score float64 `json:"score"`
	Tips  []Tip   `json:"tips"`
}

// Feedback is the flat, five-category scored critique returned by the
// analysis model.
type Feedback struct {
	OverallScore float64          `json:"overallScore"`
	ATS          CategoryFeedback `json:"ATS"`
	ToneAndStyle CategoryFeedback `json:"toneAndStyle"`
	Content      CategoryFeedback `json:"content"`
	Structure    CategoryFeedback `json:"structure"`
	Skills       CategoryFeedback `json:"skills"`
}

// NamedCategory pairs a feedback category with its declaration-order name.
type NamedCategory struct {
	Name string
	CategoryFeedback
}

// Categories returns the five categories in declaration order. Suggestion
// extraction depends on this ordering being stable.
func (f *Feedback) Categories() []NamedCategory {
	return []NamedCategory{
		{Name: "ATS", CategoryFeedback: f.ATS},
		{Name: "toneAndStyle", CategoryFeedback: f.ToneAndStyle},
		{Name: "content", CategoryFeedback: f.Content},
		{Name: "structure", CategoryFeedback: f.Structure},
		{Name: "skills", CategoryFeedback: f.Skills},
	}
}

// EnhancedAIResponse is the two-part analysis response carrying both the
// critique and the structured data extracted from the resume text.
type EnhancedAIResponse struct {
	Feedback      Feedback      `json:"feedback"`
	ExtractedData ExtractedData `json:"extractedData"`
}

// ExtractedData mirrors the input-facing subset of ResumeModel. Every
// subsection is optional; absent subsections leave builder defaults in place.
type ExtractedData struct {
	PersonalInfo *ExtractedPersonalInfo `json:"personalInfo,omitempty"`
	Summary      *ExtractedSummary      `json:"summary,omitempty"`
	Experience   []ExtractedExperience  `json:"experience,omitempty"`
	Skills       *ExtractedSkills       `json:"skills,omitempty"`
	Education    []ExtractedEducation   `json:"education,omitempty"`
	Projects     []ExtractedProject     `json:"projects,omitempty"`
}

// ExtractedPersonalInfo is the AI-extracted contact block.
type ExtractedPersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedIn,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
}

// ExtractedSummary is the AI-extracted professional summary.
type ExtractedSummary struct {
	Content           string   `json:"content"`
	KeyStrengths      []string `json:"keyStrengths"`
	YearsOfExperience int      `json:"yearsOfExperience,omitempty"`
}

// ExtractedExperience is one AI-extracted employment entry, before ids and
// relevance flags are assigned.
type ExtractedExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
}

// ExtractedSkills is the AI-extracted skills block.
type ExtractedSkills struct {
	Technical      []ExtractedTechnicalSkill `json:"technical,omitempty"`
	Soft           []string                  `json:"soft,omitempty"`
	Certifications []ExtractedCertification  `json:"certifications,omitempty"`
	Languages      []Language                `json:"languages,omitempty"`
}

// ExtractedTechnicalSkill is one AI-extracted technical skill.
type ExtractedTechnicalSkill struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency,omitempty"`
}

// ExtractedCertification is one AI-extracted certification.
type ExtractedCertification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	DateObtained string `json:"dateObtained"`
}

// ExtractedEducation is one AI-extracted education entry.
type ExtractedEducation struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	GPA         string   `json:"gpa,omitempty"`
	Honors      []string `json:"honors,omitempty"`
}

// ExtractedProject is one AI-extracted project entry.
type ExtractedProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Achievements []string `json:"achievements"`
	URL          string   `json:"url,omitempty"`
}
