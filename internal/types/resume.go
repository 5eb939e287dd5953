// Package types provides type definitions for structured data used throughout the talent profile system.
package types

// SocialLink is a named link shown on the profile (GitHub, LinkedIn, ...).
type SocialLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Summary is one summary paragraph of a given type.
type Summary struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// NextRole is a role the talent is targeting next.
type NextRole struct {
	Role       string `json:"role"`
	Experience string `json:"experience"`
	Sequence   string `json:"sequence"`
}

// Experience is one employment entry. Dates are epoch milliseconds.
type Experience struct {
	Company             string   `json:"company"`
	Title               string   `json:"title"`
	StartDate           int64    `json:"startDate"`
	EndDate             int64    `json:"endDate"`
	IsCurrentlyWorking  bool     `json:"isCurrentlyWorking"`
	HideFromThisCompany bool     `json:"hideFromThisCompany"`
	Description         string   `json:"description"`
	TechStack           []string `json:"techStack"`
}

// Language is a spoken language with a proficiency level.
type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Education is one education entry.
type Education struct {
	Institute string `json:"institute"`
	Degree    string `json:"degree"`
	PassYear  string `json:"passYear"`
}

// Resume is the aggregate profile record edited by a talent.
// Ordered sequences keep display order.
type Resume struct {
	AccountID             string       `json:"accountId"`
	FirstName             string       `json:"firstName"`
	LastName              string       `json:"lastName"`
	Location              string       `json:"location"`
	Phone                 string       `json:"phone"`
	SocialLinks           []SocialLink `json:"socialLinks"`
	ProfileImage          string       `json:"profileImage"`
	SummaryList           []Summary    `json:"summaryList"`
	NextRoles             []NextRole   `json:"nextRoles"`
	TotalYearOfExperience float64      `json:"totalYearOfExperience"`
	Experiences           []Experience `json:"experiences"`
	Languages             []Language   `json:"languages"`
	Skills                []string     `json:"skills"`
	NoticePeriod          string       `json:"noticePeriod"`
	ExceptedSalary        string       `json:"exceptedSalary"`
	Negotiable            bool         `json:"negotiable"`
	Educations            []Education  `json:"educations"`
}

// EmptyResume returns a resume with every sequence initialized and negotiable set,
// which is what a freshly registered talent starts with.
func EmptyResume() Resume {
	return Resume{
		SocialLinks: []SocialLink{},
		SummaryList: []Summary{},
		NextRoles:   []NextRole{},
		Experiences: []Experience{},
		Languages:   []Language{},
		Skills:      []string{},
		Negotiable:  true,
		Educations:  []Education{},
	}
}

// Clone returns a deep copy of the resume. Nil sequences stay nil.
func (r Resume) Clone() Resume {
	out := r
	out.SocialLinks = cloneSlice(r.SocialLinks)
	out.SummaryList = cloneSlice(r.SummaryList)
	out.NextRoles = cloneSlice(r.NextRoles)
	out.Languages = cloneSlice(r.Languages)
	out.Skills = cloneSlice(r.Skills)
	out.Educations = cloneSlice(r.Educations)
	if r.Experiences != nil {
		out.Experiences = make([]Experience, len(r.Experiences))
		for i, e := range r.Experiences {
			e.TechStack = cloneSlice(e.TechStack)
			out.Experiences[i] = e
		}
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
