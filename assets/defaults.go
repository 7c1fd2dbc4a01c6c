// Package assets embeds the files opsagent materializes on first run.
package assets

import (
	_ "embed"
)

// DefaultConfigYAML is written to ~/.opsagent/config.yaml when no
// configuration exists yet. Keeping it as a real YAML file preserves the
// inline comments for users who edit it.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultGuardrailYAML seeds ~/.opsagent/guardrail.yaml and doubles as the
// in-memory rule source when no rules file is readable.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte

// DefaultSystemPrompt is the role-and-grammar instruction block sent as the
// system message. Users override it with /prompt set, which persists to
// ~/.opsagent/system_prompt.md.
//
//go:embed defaults/system_prompt.md
var DefaultSystemPrompt string

// BashHook and ZshHook are the rc-file snippets install-completion copies to
// ~/.opsagent/shell/. They source the completion script generated by the
// binary itself.
//
//go:embed shell/opsagent.bash
var BashHook string

//go:embed shell/opsagent.zsh
var ZshHook string
