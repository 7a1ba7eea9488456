package domain

// DefaultContent is the first-run portfolio, shown until the owner edits
// anything. Each category also serves as the fallback when its cached copy
// turns out to be corrupt.
func DefaultContent() *Content {
	return &Content{
		Profile:  DefaultProfile(),
		Projects: DefaultProjects(),
		Skills:   DefaultSkills(),
		About:    DefaultAbout(),
	}
}

func DefaultProfile() Profile {
	return Profile{
		Name:   "Alex Doe",
		Title:  "Senior Frontend React Engineer",
		Bio:    "I am a passionate frontend developer with a knack for creating beautiful, functional, and user-centered web applications. With over 8 years of experience, I specialize in the React ecosystem, TypeScript, and modern web technologies.",
		Email:  "hello@alexdoe.dev",
		Avatar: "https://i.pravatar.cc/300?u=alexdoe",
		Social: SocialLinks{
			GitHub:   "https://github.com",
			LinkedIn: "https://linkedin.com",
			Twitter:  "https://twitter.com",
		},
	}
}

func DefaultProjects() []Project {
	return []Project{
		{
			Title:       "E-Commerce Platform",
			Description: "A full-featured e-commerce website with a modern design, product filtering, shopping cart, and checkout process, built with Next.js and Tailwind CSS.",
			Images:      []string{"https://picsum.photos/seed/ecom/600/400"},
			Tags:        []string{"React", "Next.js", "TypeScript", "Tailwind CSS", "Stripe"},
			LiveURL:     "#",
			RepoURL:     "#",
		},
		{
			Title:       "Data Visualization Dashboard",
			Description: "An interactive dashboard for visualizing complex datasets using D3.js and Recharts, providing insights through dynamic charts and graphs.",
			Images:      []string{"https://picsum.photos/seed/dash/600/400"},
			Tags:        []string{"React", "TypeScript", "D3.js", "Recharts", "Styled-Components"},
			LiveURL:     "#",
		},
		{
			Title:       "Project Management Tool",
			Description: "A collaborative project management application with features like drag-and-drop tasks, real-time updates, and user authentication using Firebase.",
			Images:      []string{"https://picsum.photos/seed/pmtool/600/400"},
			Tags:        []string{"React", "Firebase", "Redux", "Material-UI"},
			LiveURL:     "#",
			RepoURL:     "#",
		},
		{
			Title:       "AI-Powered Content Generator",
			Description: "A web app that leverages the Gemini API to generate creative content, from blog posts to social media captions, based on user prompts.",
			Images:      []string{"https://picsum.photos/seed/aigen/600/400"},
			Tags:        []string{"React", "Gemini API", "Node.js", "Express", "Tailwind CSS"},
			LiveURL:     "#",
			RepoURL:     "#",
		},
	}
}

func DefaultSkills() []SkillCategory {
	return []SkillCategory{
		{
			Title:  "Frontend",
			Skills: []string{"HTML5", "CSS3", "JavaScript (ES6+)", "TypeScript", "React", "Next.js", "Redux", "Tailwind CSS", "Framer Motion"},
		},
		{
			Title:  "Backend",
			Skills: []string{"Node.js", "Express", "Firebase", "REST APIs", "GraphQL"},
		},
		{
			Title:  "Tools & DevOps",
			Skills: []string{"Git", "GitHub", "Docker", "Vite", "Webpack", "Jest", "CI/CD"},
		},
	}
}

func DefaultAbout() AboutContent {
	return AboutContent{
		Image:      "https://picsum.photos/seed/about/600/600",
		Paragraph1: "Hello! I'm a dedicated frontend developer with a passion for building intuitive, high-performance web applications. My journey into web development started years ago, and since then, I've been hooked on turning complex problems into elegant, user-friendly solutions.",
		Paragraph2: "I thrive in collaborative environments and enjoy working with cross-functional teams to bring ideas to life. My expertise lies in the React ecosystem, where I leverage tools like Next.js, Redux, and TypeScript to create robust and scalable applications.",
		Paragraph3: "When I'm not coding, you can find me exploring new technologies, contributing to open-source projects, or enjoying a good cup of coffee. I'm always eager to learn and take on new challenges.",
	}
}
