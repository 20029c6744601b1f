package catalog

// Default catalog content. The catalog is static: it is seeded once at
// process start (or by migration, for SQL engines) and never mutated.

func DefaultCourses() []Course {
	return []Course{
		{
			Title:       "Knowledge Management Fundamentals",
			Slug:        "km-fundamentals",
			Description: "Learn the basics of knowledge management in organizational settings.",
			Category:    "Fundamentals",
			Level:       "Beginner",
			Duration:    "3 hours",
			Featured:    true,
		},
		{
			Title:       "Advanced Knowledge Management",
			Slug:        "advanced-km",
			Description: "Dive deeper into knowledge management strategies and implementation.",
			Category:    "Advanced",
			Level:       "Intermediate",
			Duration:    "5 hours",
		},
		{
			Title:       "Knowledge Management for Leaders",
			Slug:        "km-leadership",
			Description: "Learn how to implement knowledge management practices as a leader.",
			Category:    "Leadership",
			Level:       "Advanced",
			Duration:    "4 hours",
			Featured:    true,
		},
	}
}

func DefaultModules() []Module {
	return []Module{
		{
			CourseID:    1,
			Title:       "Social Factors in Knowledge Management",
			Slug:        "social-factors",
			Description: "Explore social factors that influence knowledge management behaviors in organizations.",
			Order:       1,
		},
		{
			CourseID:    1,
			Title:       "Cultural Factors in Knowledge Management",
			Slug:        "cultural-factors",
			Description: "Learn about cultural dimensions that impact knowledge sharing and management.",
			Order:       2,
		},
		{
			CourseID:    1,
			Title:       "Knowledge Management Evaluation",
			Slug:        "evaluation",
			Description: "Test your understanding of knowledge management concepts.",
			Order:       3,
		},
		{
			CourseID:    2,
			Title:       "Knowledge Sharing Mechanisms",
			Slug:        "knowledge-sharing",
			Description: "Understand different mechanisms for knowledge sharing in organizations.",
			Order:       1,
		},
		{
			CourseID:    2,
			Title:       "Knowledge Capture Strategies",
			Slug:        "knowledge-capture",
			Description: "Learn effective strategies for capturing organizational knowledge.",
			Order:       2,
		},
		{
			CourseID:    3,
			Title:       "Leadership in Knowledge Management",
			Slug:        "leadership-km",
			Description: "Explore how leadership impacts knowledge management success.",
			Order:       1,
		},
		{
			CourseID:    3,
			Title:       "Building a Knowledge-Centric Culture",
			Slug:        "knowledge-culture",
			Description: "Learn how to foster a culture that values knowledge sharing and learning.",
			Order:       2,
		},
	}
}

// Seed loads the default catalog into an empty repository.
func Seed(repo Repository) error {
	if existing, err := repo.QueryAllCourses(); err != nil {
		return err
	} else if len(existing) > 0 {
		return nil
	}

	for _, c := range DefaultCourses() {
		if _, err := repo.CreateCourse(c); err != nil {
			return err
		}
	}
	for _, m := range DefaultModules() {
		if _, err := repo.CreateModule(m); err != nil {
			return err
		}
	}
	return nil
}
