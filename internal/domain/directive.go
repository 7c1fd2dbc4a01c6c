package domain

// DirectiveKind discriminates the directive families a model reply can embed.
type DirectiveKind string

const (
	DirectiveExec         DirectiveKind = "exec"
	DirectiveScript       DirectiveKind = "script"
	DirectiveTemplate     DirectiveKind = "template"
	DirectiveQuickCommand DirectiveKind = "quickcmd"
	DirectiveTool         DirectiveKind = "devops"
)

// Directive is one actionable instruction extracted from a model reply.
// Only the fields relevant to Kind are populated:
//
//	exec      Command
//	script    Language, Filename, Body
//	template  Language, Filename
//	quickcmd  Name, Args
//	devops    Name, Args
type Directive struct {
	Kind     DirectiveKind
	Command  string
	Language string
	Filename string
	Body     string
	Name     string
	Args     []string
}
