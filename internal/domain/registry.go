package domain

// QuickCommand pairs a short name with a parameterized command template.
// Custom marks entries defined in the user's configuration, which shadow
// built-ins of the same name.
type QuickCommand struct {
	Name     string
	Template string
	Custom   bool
}

// ToolInfo describes one devops tool for listings.
type ToolInfo struct {
	Name    string
	Summary string
	Usage   string
}
