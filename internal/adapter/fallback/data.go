package fallback

import "internportal/internal/domain"

var stats = domain.DashboardStats{
	TotalInterns:     1247,
	TotalProjects:    89,
	TotalMentors:     156,
	TotalAllocations: 892,
	SuccessRate:      94.2,
	AverageRating:    4.3,
}

// FixedStats returns the summary served when analytics are unavailable.
func FixedStats() domain.DashboardStats {
	return stats
}

var candidates = []domain.Candidate{
	{
		ID: 122, Name: "Arjun Kumar", Email: "arjun.kumar@email.com",
		College: "IIT Delhi", Branch: "Computer Science",
		Skills:   map[string]int{"Python": 85, "React": 75, "Machine Learning": 80},
		Category: "General", State: "Delhi", Status: "active",
	},
	{
		ID: 123, Name: "Priya Sharma", Email: "priya.sharma@email.com",
		College: "NIT Bangalore", Branch: "Information Technology",
		Skills:   map[string]int{"Java": 90, "Spring Boot": 80, "Database": 85},
		Category: "General", State: "Karnataka", Status: "active",
	},
	{
		ID: 124, Name: "Rajesh Patel", Email: "rajesh.patel@email.com",
		College: "BITS Pilani", Branch: "Electronics",
		Skills:   map[string]int{"IoT": 80, "Embedded Systems": 85, "Python": 70},
		Category: "OBC", State: "Rajasthan", Status: "allocated",
	},
	{
		ID: 125, Name: "Sneha Reddy", Email: "sneha.reddy@email.com",
		College: "IIIT Hyderabad", Branch: "Computer Science",
		Skills:   map[string]int{"Data Science": 90, "Machine Learning": 85, "Python": 90},
		Category: "General", State: "Telangana", Status: "active",
	},
	{
		ID: 126, Name: "Mohammed Ali", Email: "mohammed.ali@email.com",
		College: "Jamia Millia Islamia", Branch: "Software Engineering",
		Skills:   map[string]int{"JavaScript": 85, "Node.js": 80, "MongoDB": 75},
		Category: "Minority", State: "Delhi", Status: "active",
	},
}

var seedAllocations = []domain.Allocation{
	{
		ID:         1,
		Intern:     domain.AllocationIntern{ID: 122, Name: "Arjun Kumar"},
		Project:    domain.AllocationProject{Title: "AI-Powered Healthcare Analytics", Organization: "HealthTech Solutions"},
		Mentor:     domain.AllocationMentor{Name: "Dr. Meera Singh", Designation: "Senior Data Scientist"},
		MatchScore: 0.92, Status: "active", StartDate: "2025-01-15",
	},
	{
		ID:         2,
		Intern:     domain.AllocationIntern{ID: 123, Name: "Priya Sharma"},
		Project:    domain.AllocationProject{Title: "E-commerce Backend Development", Organization: "ShopEasy India"},
		Mentor:     domain.AllocationMentor{Name: "Mr. Vikram Joshi", Designation: "Lead Backend Developer"},
		MatchScore: 0.88, Status: "pending", StartDate: "2025-01-20",
	},
	{
		ID:         3,
		Intern:     domain.AllocationIntern{ID: 124, Name: "Rajesh Patel"},
		Project:    domain.AllocationProject{Title: "IoT-based Smart Agriculture", Organization: "AgriTech Solutions"},
		Mentor:     domain.AllocationMentor{Name: "Dr. Sunita Gupta", Designation: "IoT Specialist"},
		MatchScore: 0.85, Status: "completed", StartDate: "2024-12-01",
	},
}

// IDs are assigned when appended.
var simulatedAllocations = []domain.Allocation{
	{
		Intern:     domain.AllocationIntern{ID: 125, Name: "Sneha Reddy"},
		Project:    domain.AllocationProject{Title: "Machine Learning for Finance", Organization: "FinTech Analytics"},
		Mentor:     domain.AllocationMentor{Name: "Mr. Ravi Kumar", Designation: "ML Engineer"},
		MatchScore: 0.94, Status: "pending", StartDate: "2025-01-25",
	},
	{
		Intern:     domain.AllocationIntern{ID: 126, Name: "Mohammed Ali"},
		Project:    domain.AllocationProject{Title: "Web Development for NGO", Organization: "SocialTech Foundation"},
		Mentor:     domain.AllocationMentor{Name: "Ms. Anita Chopra", Designation: "Full Stack Developer"},
		MatchScore: 0.87, Status: "pending", StartDate: "2025-01-28",
	},
}

var recommendations = []domain.Recommendation{
	{
		CompanyName: "Tech Solutions India", JobTitle: "Software Development Intern", MatchScore: 0.89,
		JobDescription: "Full-stack web development using React, Node.js, and MongoDB. Work on real client projects and gain hands-on experience.",
	},
	{
		CompanyName: "Digital Innovation Labs", JobTitle: "Machine Learning Intern", MatchScore: 0.85,
		JobDescription: "Work on AI/ML projects using Python, TensorFlow, and data analysis. Contribute to cutting-edge research.",
	},
	{
		CompanyName: "Green Energy Corp", JobTitle: "Data Analytics Intern", MatchScore: 0.82,
		JobDescription: "Analyze energy consumption data and create insights using Python, SQL, and visualization tools.",
	},
	{
		CompanyName: "FinTech Solutions", JobTitle: "Backend Developer Intern", MatchScore: 0.78,
		JobDescription: "Develop APIs and microservices using Java Spring Boot. Work on financial technology solutions.",
	},
	{
		CompanyName: "Healthcare Analytics", JobTitle: "Data Science Intern", MatchScore: 0.75,
		JobDescription: "Apply machine learning to healthcare data. Work with medical datasets and predictive modeling.",
	},
	{
		CompanyName: "E-commerce Platform", JobTitle: "Frontend Developer Intern", MatchScore: 0.72,
		JobDescription: "Build responsive web applications using React, CSS, and modern frontend technologies.",
	},
	{
		CompanyName: "Cloud Services Inc", JobTitle: "DevOps Intern", MatchScore: 0.68,
		JobDescription: "Learn cloud infrastructure, Docker, Kubernetes, and CI/CD pipelines on AWS platform.",
	},
	{
		CompanyName: "Mobile App Studio", JobTitle: "Mobile Developer Intern", MatchScore: 0.65,
		JobDescription: "Develop mobile applications for iOS and Android using React Native and Flutter.",
	},
}

var allotments = []*domain.Allotment{
	nil,
	{
		CompanyName: "Tech Solutions India", JobTitle: "Software Development Intern",
		Status: domain.AllotmentAllocated, StartDate: "2025-01-15",
		MentorName: "Dr. Rajesh Kumar", Location: "Bengaluru, Karnataka",
	},
	{
		CompanyName: "Digital Innovation Labs", JobTitle: "Machine Learning Intern",
		Status: domain.AllotmentConfirmed, StartDate: "2025-01-20",
		MentorName: "Ms. Priya Sharma", Location: "Hyderabad, Telangana",
	},
}
