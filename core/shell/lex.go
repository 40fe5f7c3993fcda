package shell

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/gosh-shell/gosh/core/engine"
	"github.com/gosh-shell/gosh/core/redirect"
)

type tokenKind int

const (
	wordToken tokenKind = iota
	pipeToken
	redirToken
)

// token is a lexed fragment of a command line. Word tokens keep their
// quotes so expansion can tell single from double quoted text; quote
// removal happens last.
type token struct {
	kind tokenKind
	text string
	op   redirect.Op
}

func syntaxError(near string) error {
	return fmt.Errorf("syntax error near unexpected token `%s'", near)
}

// lex splits a command line into words and operators. Operators bind
// without surrounding whitespace (`echo hi>out`), quoted operator
// characters stay part of their word.
func lex(line string) ([]token, error) {
	var toks []token
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, token{kind: wordToken, text: cur.String()})
			cur.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\'' || c == '"':
			end := strings.IndexByte(line[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated quoted string")
			}
			cur.WriteString(line[i : i+end+2])
			i += end + 1

		case c == ' ' || c == '\t':
			flush()

		case c == '|':
			flush()
			toks = append(toks, token{kind: pipeToken, text: "|"})

		case c == '<' || c == '>':
			flush()
			opText := string(c)
			if i+1 < len(line) && line[i+1] == c {
				opText += string(c)
				i++
			}
			op, _ := redirect.ParseOp(opText)
			toks = append(toks, token{kind: redirToken, text: opText, op: op})

		default:
			cur.WriteByte(c)
		}
	}
	flush()

	return toks, nil
}

// expandWord substitutes $NAME, ${NAME} and $? in a word while the
// word still carries its quotes: single quoted text passes through
// untouched, double quoted text expands without word splitting.
func (s *Shell) expandWord(word string) string {
	var out strings.Builder

	for i := 0; i < len(word); {
		switch word[i] {
		case '\'':
			end := strings.IndexByte(word[i+1:], '\'')
			out.WriteString(word[i : i+end+2])
			i += end + 2

		case '"':
			end := strings.IndexByte(word[i+1:], '"')
			out.WriteByte('"')
			out.WriteString(os.Expand(word[i+1:i+1+end], s.lookupVar))
			out.WriteByte('"')
			i += end + 2

		default:
			stop := strings.IndexAny(word[i:], `'"`)
			if stop < 0 {
				stop = len(word) - i
			}
			out.WriteString(os.Expand(word[i:i+stop], s.lookupVar))
			i += stop
		}
	}

	return out.String()
}

// lookupVar resolves names for expansion, including the shell-only
// variables $? and $$.
func (s *Shell) lookupVar(name string) string {
	switch name {
	case "?":
		return strconv.Itoa(int(uint8(s.Session.LastStatus)))
	case "$":
		return strconv.Itoa(os.Getpid())
	default:
		return s.Session.Env.Get(name)
	}
}

// fields expands a word and removes its quotes. Unquoted expansions
// word-split; an expansion to nothing drops the word entirely.
func (s *Shell) fields(word string) ([]string, error) {
	return shlex.Split(s.expandWord(word), true)
}

// redirTarget resolves the word after a redirection operator to
// exactly one pathname. Heredoc delimiters are quote-removed but
// never expanded.
func (s *Shell) redirTarget(tok token, op redirect.Op) (string, error) {
	var parts []string
	var err error
	if op == redirect.OpHeredoc {
		parts, err = shlex.Split(tok.text, true)
	} else {
		parts, err = s.fields(tok.text)
	}
	if err != nil {
		return "", err
	}
	if len(parts) != 1 {
		return "", fmt.Errorf("%s: ambiguous redirect", tok.text)
	}
	return parts[0], nil
}

// parse turns a command line into a pipeline. An all-whitespace line
// parses to an empty pipeline, not an error.
func (s *Shell) parse(line string) (*engine.Pipeline, error) {
	toks, err := lex(line)
	if err != nil {
		return nil, err
	}

	var stages []*engine.Stage
	st := &engine.Stage{}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.kind {
		case wordToken:
			words, err := s.fields(tok.text)
			if err != nil {
				return nil, err
			}
			st.Argv = append(st.Argv, words...)

		case redirToken:
			if i+1 >= len(toks) || toks[i+1].kind != wordToken {
				near := "newline"
				if i+1 < len(toks) {
					near = toks[i+1].text
				}
				return nil, syntaxError(near)
			}
			target, err := s.redirTarget(toks[i+1], tok.op)
			if err != nil {
				return nil, err
			}
			st.Redirs = append(st.Redirs, redirect.Redir{Op: tok.op, Target: target})
			i++

		case pipeToken:
			if len(st.Argv) == 0 && len(st.Redirs) == 0 {
				return nil, syntaxError("|")
			}
			stages = append(stages, st)
			st = &engine.Stage{}
		}
	}

	if len(st.Argv) == 0 && len(st.Redirs) == 0 {
		if len(stages) > 0 {
			// Trailing pipe with nothing after it.
			return nil, syntaxError("newline")
		}
		return engine.NewPipeline(), nil
	}
	stages = append(stages, st)

	return engine.NewPipeline(stages...), nil
}
