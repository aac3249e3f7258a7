package capability

// SeedCapabilities returns the demo catalog loaded at process start.
func SeedCapabilities() map[string]*Capability {
	return map[string]*Capability{
		"Cloud Architecture": {
			Description:       "Design and implement scalable cloud solutions using AWS, Azure, and GCP",
			PracticeArea:      "Technology",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"AWS Solutions Architect", "Azure Architect Expert"},
			IndustryVerticals: []string{"Healthcare", "Financial Services", "Retail"},
			Capacity:          40,
			Consultants:       []string{"alice.smith@slalom.com", "bob.johnson@slalom.com"},
		},
		"Data Analytics": {
			Description:       "Advanced data analysis, visualization, and machine learning solutions",
			PracticeArea:      "Technology",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"Tableau Desktop Specialist", "Power BI Expert", "Google Analytics"},
			IndustryVerticals: []string{"Retail", "Healthcare", "Manufacturing"},
			Capacity:          35,
			Consultants:       []string{"emma.davis@slalom.com", "sophia.wilson@slalom.com"},
		},
		"DevOps Engineering": {
			Description:       "CI/CD pipeline design, infrastructure automation, and containerization",
			PracticeArea:      "Technology",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"Docker Certified Associate", "Kubernetes Admin", "Jenkins Certified"},
			IndustryVerticals: []string{"Technology", "Financial Services"},
			Capacity:          30,
			Consultants:       []string{"john.brown@slalom.com", "olivia.taylor@slalom.com"},
		},
		"Digital Strategy": {
			Description:       "Digital transformation planning and strategic technology roadmaps",
			PracticeArea:      "Strategy",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"Digital Transformation Certificate", "Agile Certified Practitioner"},
			IndustryVerticals: []string{"Healthcare", "Financial Services", "Government"},
			Capacity:          25,
			Consultants:       []string{"liam.anderson@slalom.com", "noah.martinez@slalom.com"},
		},
		"Change Management": {
			Description:       "Organizational change leadership and adoption strategies",
			PracticeArea:      "Operations",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"Prosci Certified", "Lean Six Sigma Black Belt"},
			IndustryVerticals: []string{"Healthcare", "Manufacturing", "Government"},
			Capacity:          20,
			Consultants:       []string{"ava.garcia@slalom.com", "mia.rodriguez@slalom.com"},
		},
		"UX/UI Design": {
			Description:       "User experience design and digital product innovation",
			PracticeArea:      "Technology",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"Adobe Certified Expert", "Google UX Design Certificate"},
			IndustryVerticals: []string{"Retail", "Healthcare", "Technology"},
			Capacity:          30,
			Consultants:       []string{"amelia.lee@slalom.com", "harper.white@slalom.com"},
		},
		"Cybersecurity": {
			Description:       "Information security strategy, risk assessment, and compliance",
			PracticeArea:      "Technology",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"CISSP", "CISM", "CompTIA Security+"},
			IndustryVerticals: []string{"Financial Services", "Healthcare", "Government"},
			Capacity:          25,
			Consultants:       []string{"ella.clark@slalom.com", "scarlett.lewis@slalom.com"},
		},
		"Business Intelligence": {
			Description:       "Enterprise reporting, data warehousing, and business analytics",
			PracticeArea:      "Technology",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"Microsoft BI Certification", "Qlik Sense Certified"},
			IndustryVerticals: []string{"Retail", "Manufacturing", "Financial Services"},
			Capacity:          35,
			Consultants:       []string{"james.walker@slalom.com", "benjamin.hall@slalom.com"},
		},
		"Agile Coaching": {
			Description:       "Agile transformation and team coaching for scaled delivery",
			PracticeArea:      "Operations",
			SkillLevels:       []string{"Emerging", "Proficient", "Advanced", "Expert"},
			Certifications:    []string{"Certified Scrum Master", "SAFe Agilist", "ICAgile Certified"},
			IndustryVerticals: []string{"Technology", "Financial Services", "Healthcare"},
			Capacity:          20,
			Consultants:       []string{"charlotte.young@slalom.com", "henry.king@slalom.com"},
		},
	}
}
