package jobs

import "time"

const day = 24 * time.Hour

type seed struct {
	job Job
	age time.Duration
}

var seeds = []seed{
	{age: 2 * day, job: Job{
		ID:          "job1",
		Title:       "Senior Frontend Engineer",
		Company:     "TechFlow",
		Location:    "Bangalore / Remote",
		Description: "We are looking for a Senior Frontend Engineer with expert React and Tailwind CSS skills. You will lead the development of our core dashboard and mentor junior developers.",
		JobType:     "full-time",
		WorkMode:    "remote",
		Skills:      []string{"React", "Tailwind", "JavaScript", "TypeScript"},
		ApplyURL:    "https://example.com/jobs/1",
	}},
	{age: 5 * day, job: Job{
		ID:          "job2",
		Title:       "Backend Developer (Node.js)",
		Company:     "DataScale",
		Location:    "Hyderabad / Hybrid",
		Description: "Join our backend team building high-performance microservices. Experience with Fastify, MySQL, and Redis is a major plus.",
		JobType:     "full-time",
		WorkMode:    "hybrid",
		Skills:      []string{"Node.js", "Fastify", "MySQL", "Redis"},
		ApplyURL:    "https://example.com/jobs/2",
	}},
	{age: time.Hour, job: Job{
		ID:          "job3",
		Title:       "Full Stack Developer",
		Company:     "StartupX",
		Location:    "Bangalore",
		Description: "Generalist developer needed for an early-stage startup. You will work on everything from React frontend to Node.js backend and AWS infrastructure.",
		JobType:     "full-time",
		WorkMode:    "on-site",
		Skills:      []string{"React", "Node.js", "PostgreSQL", "AWS"},
		ApplyURL:    "https://example.com/jobs/3",
	}},
	{age: 3 * day, job: Job{
		ID:          "job4",
		Title:       "Python ML Engineer",
		Company:     "AI Solutions",
		Location:    "Remote",
		Description: "Help us build and deploy machine learning models. Deep knowledge of Python, PyTorch, and NLP is required.",
		JobType:     "contract",
		WorkMode:    "remote",
		Skills:      []string{"Python", "PyTorch", "Machine Learning", "NLP"},
		ApplyURL:    "https://example.com/jobs/4",
	}},
	{age: 10 * day, job: Job{
		ID:          "job5",
		Title:       "UX/UI Designer",
		Company:     "Creative Studio",
		Location:    "Mumbai / Hybrid",
		Description: "Produce beautiful and functional designs for our mobile and web clients. Proficiency in Figma and Adobe Creative Suite is essential.",
		JobType:     "full-time",
		WorkMode:    "hybrid",
		Skills:      []string{"Figma", "UI Design", "UX Research", "Prototyping"},
		ApplyURL:    "https://example.com/jobs/5",
	}},
	{age: 12 * time.Hour, job: Job{
		ID:          "job6",
		Title:       "React Native Developer",
		Company:     "MobileFirst",
		Location:    "Remote",
		Description: "Build cross-platform mobile apps using React Native. Experience with Redux and mobile performance optimization is key.",
		JobType:     "full-time",
		WorkMode:    "remote",
		Skills:      []string{"React Native", "JavaScript", "Redux", "iOS/Android"},
		ApplyURL:    "https://example.com/jobs/6",
	}},
	{age: 4 * day, job: Job{
		ID:          "job7",
		Title:       "DevOps Engineer",
		Company:     "CloudNative",
		Location:    "Chennai / Remote",
		Description: "Manage our Kubernetes clusters and CI/CD pipelines. Proficiency with Docker, Terraform, and GitHub Actions is required.",
		JobType:     "full-time",
		WorkMode:    "remote",
		Skills:      []string{"Kubernetes", "Docker", "Terraform", "CI/CD"},
		ApplyURL:    "https://example.com/jobs/7",
	}},
	{age: 2 * time.Hour, job: Job{
		ID:          "job8",
		Title:       "Junior Web Developer",
		Company:     "EduTech",
		Location:    "Pune",
		Description: "Great opportunity for fresh graduates. Learn full-stack development with React and Node.js in a supportive environment.",
		JobType:     "internship",
		WorkMode:    "on-site",
		Skills:      []string{"HTML", "CSS", "JavaScript", "React"},
		ApplyURL:    "https://example.com/jobs/8",
	}},
	{age: 6 * day, job: Job{
		ID:          "job9",
		Title:       "Product Manager",
		Company:     "SocialHub",
		Location:    "Bangalore / Hybrid",
		Description: "Define the product roadmap for our social features. Strong communication and analytical skills are a must.",
		JobType:     "full-time",
		WorkMode:    "hybrid",
		Skills:      []string{"Product Strategy", "Agile", "Analytics", "Communication"},
		ApplyURL:    "https://example.com/jobs/9",
	}},
	{age: 8 * day, job: Job{
		ID:          "job10",
		Title:       "Security Analyst",
		Company:     "SafeGuard",
		Location:    "Remote",
		Description: "Help us maintain the security of our infrastructure. Experience with penetration testing and security audits is required.",
		JobType:     "contract",
		WorkMode:    "remote",
		Skills:      []string{"Cybersecurity", "Pen Testing", "Networking", "Compliance"},
		ApplyURL:    "https://example.com/jobs/10",
	}},
}

func mockFeed(now time.Time) []Job {
	feed := make([]Job, 0, len(seeds))
	for _, s := range seeds {
		job := s.job
		job.PostedDate = now.Add(-s.age)
		job.Skills = append([]string(nil), s.job.Skills...)
		feed = append(feed, job)
	}
	return feed
}
