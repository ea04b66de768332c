package content

// Hub branding shared by the web and terminal front-ends.
const (
	HubName   = "GitMesh"
	HubTitle  = "GitMesh Documentation Hub (LFDT Supported)"
	Tagline   = "Intelligent Git collaboration network with branch-level AI assistance, smart contributor matching, and real-time workflow coordination for open-source projects."
	RepoURL   = "https://github.com/LF-Decentralized-Trust-Mentorships/gitmesh"
	RepoStars = "78"
)
