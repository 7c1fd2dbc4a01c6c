// Package parser extracts executable directives from model replies.
//
// A reply is ordinary prose with zero or more square-bracket directives
// embedded in it:
//
//	[EXEC] du -sh /var/log [/EXEC]
//	[SCRIPT bash cleanup.sh] ... [/SCRIPT]
//	[TEMPLATE terraform main.tf]
//	[QUICKCMD service-status nginx]
//	[DEVOPS analyze_logs /var/log/syslog error]
//
// Parse returns the directives in order of appearance plus the prose with
// every well-formed directive span removed. Malformed spans (unterminated
// pair, wrong header arity, empty command) yield no directive and stay in
// the prose, so the user still sees what the model attempted without
// anything half-parsed reaching the execution path.
package parser

import (
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Tag family names. Matching is case sensitive.
const (
	famExec     = "EXEC"
	famScript   = "SCRIPT"
	famTemplate = "TEMPLATE"
	famQuickCmd = "QUICKCMD"
	famTool     = "DEVOPS"
)

// Parser implements directive extraction. It is stateless and safe to share.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

var _ ports.DirectiveParser = (*Parser)(nil)

// Parse scans text left to right, consuming each well-formed directive span
// and collecting everything else as prose. Re-parsing the returned prose
// yields no directives.
func (p *Parser) Parse(text string) ([]domain.Directive, string) {
	var directives []domain.Directive
	var prose strings.Builder

	pos := 0
	for {
		idx := strings.IndexByte(text[pos:], '[')
		if idx < 0 {
			prose.WriteString(text[pos:])
			break
		}
		open := pos + idx

		directive, end, ok := matchDirective(text, open)
		if !ok {
			prose.WriteString(text[pos : open+1])
			pos = open + 1
			continue
		}

		directives = append(directives, directive)
		prose.WriteString(text[pos:open])
		// A space in place of the span keeps the surrounding prose from
		// fusing into a new tag, which would break idempotence.
		prose.WriteByte(' ')
		pos = end
	}

	return directives, strings.TrimSpace(prose.String())
}

// matchDirective tries to read one directive whose opening bracket sits at
// open. It returns the directive, the index just past its span, and whether
// the span was well formed.
func matchDirective(text string, open int) (domain.Directive, int, bool) {
	rel := strings.IndexByte(text[open:], ']')
	if rel < 0 {
		return domain.Directive{}, 0, false
	}
	headerEnd := open + rel
	fields := strings.Fields(text[open+1 : headerEnd])
	if len(fields) == 0 {
		return domain.Directive{}, 0, false
	}
	after := headerEnd + 1

	switch fields[0] {
	case famExec:
		if len(fields) != 1 {
			return domain.Directive{}, 0, false
		}
		body, end, ok := pairedBody(text, after, "[/"+famExec+"]")
		if !ok {
			return domain.Directive{}, 0, false
		}
		command := strings.TrimSpace(body)
		if command == "" {
			return domain.Directive{}, 0, false
		}
		return domain.Directive{Kind: domain.DirectiveExec, Command: command}, end, true

	case famScript:
		if len(fields) != 3 {
			return domain.Directive{}, 0, false
		}
		body, end, ok := pairedBody(text, after, "[/"+famScript+"]")
		if !ok {
			return domain.Directive{}, 0, false
		}
		return domain.Directive{
			Kind:     domain.DirectiveScript,
			Language: fields[1],
			Filename: fields[2],
			Body:     body,
		}, end, true

	case famTemplate:
		if len(fields) != 3 {
			return domain.Directive{}, 0, false
		}
		return domain.Directive{
			Kind:     domain.DirectiveTemplate,
			Language: fields[1],
			Filename: fields[2],
		}, after, true

	case famQuickCmd:
		if len(fields) < 2 {
			return domain.Directive{}, 0, false
		}
		return domain.Directive{
			Kind: domain.DirectiveQuickCommand,
			Name: fields[1],
			Args: fields[2:],
		}, after, true

	case famTool:
		if len(fields) < 2 {
			return domain.Directive{}, 0, false
		}
		return domain.Directive{
			Kind: domain.DirectiveTool,
			Name: fields[1],
			Args: fields[2:],
		}, after, true
	}

	return domain.Directive{}, 0, false
}

// pairedBody returns the raw text between from and the next close tag, plus
// the index just past the close tag.
func pairedBody(text string, from int, closeTag string) (string, int, bool) {
	rel := strings.Index(text[from:], closeTag)
	if rel < 0 {
		return "", 0, false
	}
	return text[from : from+rel], from + rel + len(closeTag), true
}
