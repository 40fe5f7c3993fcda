package shell

import (
	"os"
	"strings"

	"github.com/fatih/color"
)

const defaultPrompt = `\u@\h:\w\$ `

var (
	promptUserColor = color.New(color.FgGreen, color.Bold)
	promptDirColor  = color.New(color.FgBlue, color.Bold)
)

// prompt renders PS1. Supported escapes are \u, \h, \w and \$; the
// user and directory parts are colored when stdout is a terminal.
func (s *Shell) prompt() string {
	env := s.Session.Env

	p := env.Get(EnvPrompt)
	if p == "" {
		p = defaultPrompt
	}

	p = strings.ReplaceAll(p, `\u`, promptUserColor.Sprint(env.Get(EnvUser)))
	p = strings.ReplaceAll(p, `\h`, promptUserColor.Sprint(env.Get(EnvHostname)))

	wd := s.Session.Dir
	if home := env.Get(EnvHome); home != "" && strings.HasPrefix(wd, home) {
		wd = "~" + strings.TrimPrefix(wd, home)
	}
	p = strings.ReplaceAll(p, `\w`, promptDirColor.Sprint(wd))

	if os.Geteuid() == 0 {
		p = strings.ReplaceAll(p, `\$`, "#")
	} else {
		p = strings.ReplaceAll(p, `\$`, "$")
	}

	return p
}
