package domain

import "time"

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedNodes returns the built-in knowledge base. Each call returns a
// fresh copy so callers may mutate it.
func SeedNodes() []Node {
	return []Node{
		{
			ID:           "node-1",
			Title:        "React Component Architecture",
			Summary:      "Comprehensive guide to building scalable React applications with proper component architecture patterns and best practices.",
			Category:     CategoryTechnical,
			Importance:   95,
			Author:       "Sarah Chen",
			LastModified: mustTime("2025-01-15T10:30:00Z"),
			Views:        2847,
			Connections:  12,
			Tags:         []string{"React", "Architecture", "Components", "Best Practices"},
			Position:     []float64{0, 0, 0},
		},
		{
			ID:           "node-2",
			Title:        "API Integration Guidelines",
			Summary:      "Standard procedures for integrating third-party APIs, handling authentication, error management, and data validation.",
			Category:     CategoryTechnical,
			Importance:   88,
			Author:       "Michael Rodriguez",
			LastModified: mustTime("2025-01-10T14:20:00Z"),
			Views:        1923,
			Connections:  8,
			Tags:         []string{"API", "Integration", "Authentication", "Validation"},
			Position:     []float64{5, 2, -3},
		},
		{
			ID:           "node-3",
			Title:        "Business Process Optimization",
			Summary:      "Methodologies for analyzing and optimizing business processes to improve efficiency and reduce operational costs.",
			Category:     CategoryBusiness,
			Importance:   76,
			Author:       "Jennifer Park",
			LastModified: mustTime("2025-01-08T09:15:00Z"),
			Views:        1456,
			Connections:  6,
			Tags:         []string{"Process", "Optimization", "Efficiency", "Cost Reduction"},
			Position:     []float64{-4, 1, 4},
		},
		{
			ID:           "node-4",
			Title:        "Data Security Protocols",
			Summary:      "Essential security measures for protecting sensitive data, including encryption, access controls, and audit trails.",
			Category:     CategoryPolicy,
			Importance:   92,
			Author:       "David Kim",
			LastModified: mustTime("2025-01-12T16:45:00Z"),
			Views:        3241,
			Connections:  15,
			Tags:         []string{"Security", "Data Protection", "Encryption", "Compliance"},
			Position:     []float64{3, -1, 6},
		},
		{
			ID:           "node-5",
			Title:        "Employee Onboarding Process",
			Summary:      "Step-by-step guide for onboarding new employees, including documentation, training schedules, and integration activities.",
			Category:     CategoryProcess,
			Importance:   68,
			Author:       "Lisa Thompson",
			LastModified: mustTime("2025-01-05T11:30:00Z"),
			Views:        987,
			Connections:  4,
			Tags:         []string{"Onboarding", "Training", "HR", "Documentation"},
			Position:     []float64{-6, 0, -2},
		},
		{
			ID:           "node-6",
			Title:        "Quality Assurance Standards",
			Summary:      "Comprehensive QA standards covering testing methodologies, code review processes, and quality metrics.",
			Category:     CategoryProcess,
			Importance:   84,
			Author:       "Robert Wilson",
			LastModified: mustTime("2025-01-14T13:20:00Z"),
			Views:        2156,
			Connections:  10,
			Tags:         []string{"QA", "Testing", "Code Review", "Quality"},
			Position:     []float64{2, 3, -5},
		},
		{
			ID:           "node-7",
			Title:        "Customer Support Training",
			Summary:      "Training materials and procedures for customer support representatives, including communication guidelines and escalation processes.",
			Category:     CategoryTraining,
			Importance:   72,
			Author:       "Amanda Davis",
			LastModified: mustTime("2025-01-07T15:10:00Z"),
			Views:        1334,
			Connections:  7,
			Tags:         []string{"Support", "Training", "Communication", "Escalation"},
			Position:     []float64{-3, -2, 3},
		},
		{
			ID:           "node-8",
			Title:        "Project Management Framework",
			Summary:      "Standardized framework for managing projects from initiation to closure, including templates and best practices.",
			Category:     CategoryBusiness,
			Importance:   80,
			Author:       "James Miller",
			LastModified: mustTime("2025-01-11T08:45:00Z"),
			Views:        1789,
			Connections:  9,
			Tags:         []string{"Project Management", "Framework", "Templates", "Best Practices"},
			Position:     []float64{4, 1, 2},
		},
	}
}

// SeedConnections returns the built-in relationships between SeedNodes
func SeedConnections() []Connection {
	return []Connection{
		{From: "node-1", To: "node-2", Type: RelationshipReferences, Strength: 0.8},
		{From: "node-1", To: "node-6", Type: RelationshipRelated, Strength: 0.6},
		{From: "node-2", To: "node-4", Type: RelationshipPrerequisite, Strength: 0.9},
		{From: "node-3", To: "node-5", Type: RelationshipContains, Strength: 0.7},
		{From: "node-3", To: "node-8", Type: RelationshipRelated, Strength: 0.8},
		{From: "node-4", To: "node-6", Type: RelationshipFollows, Strength: 0.5},
		{From: "node-5", To: "node-7", Type: RelationshipRelated, Strength: 0.6},
		{From: "node-6", To: "node-8", Type: RelationshipReferences, Strength: 0.7},
		{From: "node-7", To: "node-8", Type: RelationshipContains, Strength: 0.4},
	}
}
