package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/contable/pkg/domain"
	"github.com/aretw0/contable/pkg/ports"
	"golang.org/x/term"
)

// affirmative answers accepted by the confirmation prompt.
var affirmative = map[string]bool{
	"s":   true,
	"y":   true,
	"yes": true,
	"sí":  true,
}

// IsAffirmative reports whether answer means yes. Case and surrounding space are ignored.
func IsAffirmative(answer string) bool {
	return affirmative[strings.ToLower(strings.TrimSpace(answer))]
}

// LinePrompter asks on a writer and reads one line from a reader.
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLinePrompter creates a prompter over r and w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

var _ ports.Prompter = (*LinePrompter)(nil)

type readResult struct {
	line string
	err  error
}

// Confirm prints question and waits for an answer. An answer at EOF without a
// newline still counts; EOF with nothing typed is a refusal. Cancelling ctx
// abandons the read.
func (p *LinePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprint(p.writer, question)

	ch := make(chan readResult, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.writer)
		return false, ctx.Err()
	case res := <-ch:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", res.err)
		}
		if errors.Is(res.err, io.EOF) {
			fmt.Fprintln(p.writer)
		}
		return IsAffirmative(res.line), nil
	}
}

type nonInteractive struct{}

func (nonInteractive) Confirm(context.Context, string) (bool, error) {
	return false, domain.ErrNotInteractive
}

// NewTerminalPrompter prompts on in when it is a terminal. Otherwise every
// confirmation fails with domain.ErrNotInteractive instead of blocking on a pipe.
func NewTerminalPrompter(in *os.File, out io.Writer) ports.Prompter {
	if in == nil || !term.IsTerminal(int(in.Fd())) {
		return nonInteractive{}
	}
	return NewLinePrompter(in, out)
}
