package parser

import "github.com/jonathan/resume-review/internal/types"

// populateResumeFromExtractedData merges each extracted subsection onto the
// model independently. Absent subsections leave the builder defaults
// untouched; present array subsections replace their target wholesale.
func populateResumeFromExtractedData(model *types.ResumeModel, data *types.ExtractedData) {
	if data.PersonalInfo != nil {
		mergePersonalInfo(&model.PersonalInfo, data.PersonalInfo)
	}
	if data.Summary != nil {
		model.Summary.Content = data.Summary.Content
		if data.Summary.KeyStrengths != nil {
			model.Summary.KeyStrengths = data.Summary.KeyStrengths
		}
		if data.Summary.YearsOfExperience != 0 {
			model.Summary.YearsOfExperience = data.Summary.YearsOfExperience
		}
	}
	if data.Experience != nil {
		model.Experience = buildExperience(data.Experience)
	}
	if data.Skills != nil {
		populateSkills(&model.Skills, data.Skills)
	}
	if data.Education != nil {
		model.Education = buildEducation(data.Education)
	}
	if data.Projects != nil {
		model.Projects = buildProjects(data.Projects)
	}
}

func mergePersonalInfo(dst *types.PersonalInfo, src *types.ExtractedPersonalInfo) {
	dst.FullName = src.FullName
	dst.Email = src.Email
	dst.Phone = src.Phone
	dst.Location = src.Location
	dst.LinkedIn = src.LinkedIn
	dst.Portfolio = src.Portfolio
	dst.GitHub = src.GitHub
	dst.Website = src.Website
}

func buildExperience(entries []types.ExtractedExperience) []types.WorkExperience {
	experience := make([]types.WorkExperience, 0, len(entries))
	for _, exp := range entries {
		experience = append(experience, types.WorkExperience{
			ID:           newID(),
			Company:      exp.Company,
			Position:     exp.Position,
			StartDate:    exp.StartDate,
			EndDate:      exp.EndDate,
			Location:     exp.Location,
			Description:  exp.Description,
			Achievements: orEmpty(exp.Achievements),
			Technologies: orEmpty(exp.Technologies),
			// No relevance inference yet; everything is assumed relevant.
			IsRelevant: true,
		})
	}
	return experience
}

func populateSkills(dst *types.SkillsSection, src *types.ExtractedSkills) {
	if src.Technical != nil {
		technical := make([]types.TechnicalSkill, 0, len(src.Technical))
		for _, skill := range src.Technical {
			category := skill.Category
			if category == "" {
				category = "General"
			}
			technical = append(technical, types.TechnicalSkill{
				Name:        skill.Name,
				Category:    category,
				Proficiency: skill.Proficiency,
				IsRelevant:  true,
			})
		}
		dst.Technical = technical
	}
	if src.Soft != nil {
		dst.Soft = src.Soft
	}
	if src.Certifications != nil {
		certifications := make([]types.Certification, 0, len(src.Certifications))
		for _, cert := range src.Certifications {
			certifications = append(certifications, types.Certification{
				Name:         cert.Name,
				Issuer:       cert.Issuer,
				DateObtained: cert.DateObtained,
				IsRelevant:   true,
			})
		}
		dst.Certifications = certifications
	}
	if src.Languages != nil {
		languages := make([]types.Language, 0, len(src.Languages))
		for _, lang := range src.Languages {
			proficiency := lang.Proficiency
			if proficiency == "" {
				proficiency = "Basic"
			}
			languages = append(languages, types.Language{
				Name:        lang.Name,
				Proficiency: proficiency,
			})
		}
		dst.Languages = languages
	}
}

func buildEducation(entries []types.ExtractedEducation) []types.Education {
	education := make([]types.Education, 0, len(entries))
	for _, edu := range entries {
		education = append(education, types.Education{
			ID:          newID(),
			Institution: edu.Institution,
			Degree:      edu.Degree,
			Field:       edu.Field,
			StartDate:   edu.StartDate,
			EndDate:     edu.EndDate,
			GPA:         edu.GPA,
			Honors:      orEmpty(edu.Honors),
			IsRelevant:  true,
		})
	}
	return education
}

// defaultProjectRelevance is a placeholder pending real relevance scoring.
const defaultProjectRelevance = 80

func buildProjects(entries []types.ExtractedProject) []types.Project {
	projects := make([]types.Project, 0, len(entries))
	for _, proj := range entries {
		projects = append(projects, types.Project{
			ID:             newID(),
			Name:           proj.Name,
			Description:    proj.Description,
			Technologies:   orEmpty(proj.Technologies),
			Achievements:   orEmpty(proj.Achievements),
			URL:            proj.URL,
			RelevanceScore: defaultProjectRelevance,
		})
	}
	return projects
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
