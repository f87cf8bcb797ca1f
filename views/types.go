package views

// Site carries the branding values templates read.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// Post is the post metadata a template needs; content is passed
// separately as a rendered component.
type Post struct {
	Slug        string
	Title       string
	Description string
	Date        string
	ReadTime    string
	Image       string
	Tags        []string
}

// Service is one entry of the services section.
type Service struct {
	Title       string
	Description string
}

// ProcessStep is one entry of the process section.
type ProcessStep struct {
	Number      int
	Title       string
	Description string
}

// NavLink is a header navigation entry.
type NavLink struct {
	Name string
	Href string
}

// SocialLink is a footer social entry.
type SocialLink struct {
	Name    string
	Initial string
	Href    string
}
