package redirect

import (
	"io"
)

// HeredocReader collects one heredoc body. It reads lines up to (not
// including) the delimiter line and returns the body. Interactive
// shells prompt for each line; script runners read ahead in the
// input.
type HeredocReader func(delim string) (io.Reader, error)

// CollectHeredocs resolves every heredoc redirection in redirs using
// read. Bodies are collected in redirection order, before any part of
// the pipeline launches, so that a heredoc for a late stage is read
// from the terminal before the first stage starts producing output.
func CollectHeredocs(redirs []Redir, read HeredocReader) error {
	for i := range redirs {
		r := &redirs[i]
		if r.Op != OpHeredoc || r.Body != nil {
			continue
		}
		body, err := read(r.Target)
		if err != nil {
			return err
		}
		r.Body = body
	}
	return nil
}
