package types

// ResumePatch is a partial resume. A non-nil field is present and overwrites the
// corresponding Resume field on Apply; nil fields leave the target untouched.
// Decoding a JSON object into a ResumePatch marks exactly the keys it contains.
type ResumePatch struct {
	AccountID             *string       `json:"accountId,omitempty"`
	FirstName             *string       `json:"firstName,omitempty"`
	LastName              *string       `json:"lastName,omitempty"`
	Location              *string       `json:"location,omitempty"`
	Phone                 *string       `json:"phone,omitempty"`
	SocialLinks           *[]SocialLink `json:"socialLinks,omitempty"`
	ProfileImage          *string       `json:"profileImage,omitempty"`
	SummaryList           *[]Summary    `json:"summaryList,omitempty"`
	NextRoles             *[]NextRole   `json:"nextRoles,omitempty"`
	TotalYearOfExperience *float64      `json:"totalYearOfExperience,omitempty"`
	Experiences           *[]Experience `json:"experiences,omitempty"`
	Languages             *[]Language   `json:"languages,omitempty"`
	Skills                *[]string     `json:"skills,omitempty"`
	NoticePeriod          *string       `json:"noticePeriod,omitempty"`
	ExceptedSalary        *string       `json:"exceptedSalary,omitempty"`
	Negotiable            *bool         `json:"negotiable,omitempty"`
	Educations            *[]Education  `json:"educations,omitempty"`
}

// FullPatch returns a patch in which every field of r is present.
func FullPatch(r Resume) ResumePatch {
	r = r.Clone()
	return ResumePatch{
		AccountID:             &r.AccountID,
		FirstName:             &r.FirstName,
		LastName:              &r.LastName,
		Location:              &r.Location,
		Phone:                 &r.Phone,
		SocialLinks:           &r.SocialLinks,
		ProfileImage:          &r.ProfileImage,
		SummaryList:           &r.SummaryList,
		NextRoles:             &r.NextRoles,
		TotalYearOfExperience: &r.TotalYearOfExperience,
		Experiences:           &r.Experiences,
		Languages:             &r.Languages,
		Skills:                &r.Skills,
		NoticePeriod:          &r.NoticePeriod,
		ExceptedSalary:        &r.ExceptedSalary,
		Negotiable:            &r.Negotiable,
		Educations:            &r.Educations,
	}
}

// IsEmpty reports whether no field is present.
func (p ResumePatch) IsEmpty() bool {
	return p == ResumePatch{}
}

// Apply returns a copy of r with every present field of p written over it.
// The merge is shallow: a present sequence replaces the whole sequence.
// The result shares no slices with r or p.
func (p ResumePatch) Apply(r Resume) Resume {
	out := r.Clone()

	setIf(&out.AccountID, p.AccountID)
	setIf(&out.FirstName, p.FirstName)
	setIf(&out.LastName, p.LastName)
	setIf(&out.Location, p.Location)
	setIf(&out.Phone, p.Phone)
	setIf(&out.ProfileImage, p.ProfileImage)
	setIf(&out.TotalYearOfExperience, p.TotalYearOfExperience)
	setIf(&out.NoticePeriod, p.NoticePeriod)
	setIf(&out.ExceptedSalary, p.ExceptedSalary)
	setIf(&out.Negotiable, p.Negotiable)

	if p.SocialLinks != nil {
		out.SocialLinks = cloneSlice(*p.SocialLinks)
	}
	if p.SummaryList != nil {
		out.SummaryList = cloneSlice(*p.SummaryList)
	}
	if p.NextRoles != nil {
		out.NextRoles = cloneSlice(*p.NextRoles)
	}
	if p.Languages != nil {
		out.Languages = cloneSlice(*p.Languages)
	}
	if p.Skills != nil {
		out.Skills = cloneSlice(*p.Skills)
	}
	if p.Educations != nil {
		out.Educations = cloneSlice(*p.Educations)
	}
	if p.Experiences != nil {
		out.Experiences = Resume{Experiences: *p.Experiences}.Clone().Experiences
	}

	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
