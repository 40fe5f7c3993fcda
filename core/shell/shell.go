package shell

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/abiosoft/readline"
	"github.com/gosh-shell/gosh/core/builtin"
	"github.com/gosh-shell/gosh/core/config"
	"github.com/gosh-shell/gosh/core/engine"
	"github.com/gosh-shell/gosh/core/logger"
)

const (
	EnvHome     = "HOME"
	EnvPWD      = "PWD"
	EnvPath     = "PATH"
	EnvPrompt   = "PS1"
	EnvHostname = "HOSTNAME"
	EnvUser     = "USER"
)

// Shell drives a session: it reads lines, parses them into pipelines
// and hands them to the engine.
type Shell struct {
	Config  *config.Configuration
	Session *engine.Session
	Engine  *engine.Engine
	Log     *logger.SessionLogger

	readline *readline.Instance
	scanner  *bufio.Scanner
}

// New wires a shell around an existing session. Init seeds the
// environment; call it unless the session is fully prepared already.
func New(cfg *config.Configuration, sess *engine.Session, slog *logger.SessionLogger) *Shell {
	s := &Shell{
		Config:  cfg,
		Session: sess,
		Engine:  engine.New("gosh", builtin.Registry{}),
		Log:     slog,
	}
	sess.ReadHeredoc = s.readHeredoc
	return s
}

// Init sets up the environment similar to login + source ~/.profile.
func (s *Shell) Init() {
	env := s.Session.Env

	if _, ok := env.Lookup(EnvHome); !ok {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "/"
		}
		env.Set(EnvHome, home)
	}

	if s.Session.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			s.Session.Dir = wd
		} else {
			s.Session.Dir = env.Get(EnvHome)
		}
	}
	env.Set(EnvPWD, s.Session.Dir)

	if _, ok := env.Lookup(EnvPath); !ok {
		env.Set(EnvPath, s.Config.DefaultPath)
	}
	if _, ok := env.Lookup(EnvHostname); !ok {
		host, err := os.Hostname()
		if err != nil {
			host = "localhost"
		}
		env.Set(EnvHostname, host)
	}
	if _, ok := env.Lookup(EnvUser); !ok {
		env.Set(EnvUser, "user")
	}
	if _, ok := env.Lookup(EnvPrompt); !ok {
		env.Set(EnvPrompt, s.Config.Prompt)
	}
}

// RunInteractive runs the read-eval loop until exit or EOF and
// returns the shell's exit status.
func (s *Shell) RunInteractive() int {
	cfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(s.Session.Stdin),
		Stdout:      s.Session.Stdout,
		Stderr:      s.Session.Stderr,
		HistoryFile: s.Config.HistoryFile,
	}
	if err := cfg.Init(); err != nil {
		fmt.Fprintf(s.Session.Stderr, "gosh: %v\n", err)
		return engine.StatusFailure
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		fmt.Fprintf(s.Session.Stderr, "gosh: %v\n", err)
		return engine.StatusFailure
	}
	defer rl.Close()
	s.readline = rl

	for !s.Session.ExitRequested {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return s.exitStatus()

		case err == readline.ErrInterrupt:
			// Ctrl-C abandons the line but the shell keeps going.
			s.Session.LastStatus = engine.StatusInterrupt
			continue

		case err != nil:
			log.Printf("readline: %v", err)
			continue

		case strings.TrimSpace(line) == "":
			continue

		default:
			s.runLine(line)
		}
	}
	return s.exitStatus()
}

// RunScript executes lines from r without a prompt, stopping at exit
// or EOF. Used for script files and -c strings.
func (s *Shell) RunScript(r io.Reader) int {
	s.scanner = bufio.NewScanner(r)
	for !s.Session.ExitRequested && s.scanner.Scan() {
		line := s.scanner.Text()
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		s.runLine(line)
	}
	return s.exitStatus()
}

// RunString executes a -c command string.
func (s *Shell) RunString(command string) int {
	return s.RunScript(strings.NewReader(command))
}

func (s *Shell) exitStatus() int {
	if s.Session.ExitRequested {
		return s.Session.ExitCode
	}
	return s.Session.LastStatus
}

// runLine parses and runs one command line. A panic anywhere below
// fails the command, not the shell.
func (s *Shell) runLine(line string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(s.Session.Stderr, "gosh: internal error: %v\n", r)
			s.Session.LastStatus = engine.StatusFailure
			if s.Log != nil {
				s.Log.RecordPanic(fmt.Sprintf("command %q", line), string(debug.Stack()))
			}
		}
	}()

	p, err := s.parse(line)
	if err != nil {
		fmt.Fprintf(s.Session.Stderr, "gosh: %v\n", err)
		s.Session.LastStatus = 2
		return
	}
	if p.Len() == 0 {
		return
	}

	s.Session.Reset()

	// The terminal delivers Ctrl-C to the whole foreground group;
	// swallow it here so only the children die.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGQUIT)
	s.Engine.Run(s.Session, p)
	signal.Stop(interrupts)

	if s.Log != nil {
		s.Log.RecordCommand(p.Argv(), s.Session.LastStatus)
	}
}

// readHeredoc gathers input lines up to the delimiter. EOF before
// the delimiter ends the document like bash does, without an error.
func (s *Shell) readHeredoc(delim string) (io.Reader, error) {
	var body strings.Builder
	for {
		line, err := s.readLine("> ")
		if err != nil || line == delim {
			break
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	return strings.NewReader(body.String()), nil
}

func (s *Shell) readLine(prompt string) (string, error) {
	if s.readline != nil {
		s.readline.SetPrompt(prompt)
		return s.readline.Readline()
	}
	if s.scanner != nil && s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	return "", io.EOF
}
