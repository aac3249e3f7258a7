package capability

// Capability is a named consulting skill or practice area with its metadata
// and consultant roster. The roster holds unique emails; ordering is not
// significant.
type Capability struct {
	Name              string   `json:"-"`
	Description       string   `json:"description"`
	PracticeArea      string   `json:"practice_area"`
	SkillLevels       []string `json:"skill_levels"`
	Certifications    []string `json:"certifications"`
	IndustryVerticals []string `json:"industry_verticals"`
	Capacity          int      `json:"capacity"`
	Consultants       []string `json:"consultants"`
}

// clone returns a deep copy so registry state can never be mutated through a
// returned value.
func (c *Capability) clone() Capability {
	copied := *c
	copied.SkillLevels = append([]string(nil), c.SkillLevels...)
	copied.Certifications = append([]string(nil), c.Certifications...)
	copied.IndustryVerticals = append([]string(nil), c.IndustryVerticals...)
	copied.Consultants = append([]string(nil), c.Consultants...)
	return copied
}

func (c *Capability) hasConsultant(email string) bool {
	for _, e := range c.Consultants {
		if e == email {
			return true
		}
	}
	return false
}
