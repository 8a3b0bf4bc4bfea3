package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// readlinePrompt edits the answer with readline on a terminal. Piped input gets
// the label written to stderr and one line read as is.
func readlinePrompt(cmd *cobra.Command) func(string) (string, error) {
	return func(label string) (string, error) {
		in := cmd.InOrStdin()
		if !isTerminal(in) {
			return readPipedLine(in, cmd.ErrOrStderr(), label)
		}
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          label,
			Stdin:           io.NopCloser(in),
			Stdout:          cmd.ErrOrStderr(),
			Stderr:          cmd.ErrOrStderr(),
			InterruptPrompt: "^C",
		})
		if err != nil {
			return "", err
		}
		defer rl.Close()
		return rl.Readline()
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && readline.IsTerminal(int(f.Fd()))
}

func readPipedLine(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		fmt.Fprintln(out)
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// isYes accepts y/yes in any case; everything else, including an empty line, is no.
func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
