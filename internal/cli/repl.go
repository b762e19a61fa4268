package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/govalues/radix/internal/protocol"
	"github.com/govalues/radix/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const replPrompt = "radix> "

var errReplUsage = errors.New("usage: convert <number> <from> <to> | arith <a> <op> <b> <base>")

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate requests read line by line from standard input",
		Long: `Evaluate requests read line by line from standard input.

Each line is a command with shell-style quoting or a raw request line:
  convert 0.1(6) 10 12
  arith "0.(3)" + 0.(6) 10
  arif,1,3,10,/

"quit" or end of input stops the loop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.newService(cmd)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			return runRepl(cmd.Context(), svc, in, cmd.OutOrStdout(), isTerminal(in))
		},
	}
	return cmd
}

func runRepl(ctx context.Context, svc *service.Service, in io.Reader, out io.Writer, prompt bool) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), protocol.MaxRequestBytes+1)
	for {
		if prompt {
			fmt.Fprint(out, replPrompt)
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		fmt.Fprintln(out, evalReplLine(ctx, svc, line))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func evalReplLine(ctx context.Context, svc *service.Service, line string) string {
	if strings.Contains(line, ",") {
		return svc.Handle(ctx, line)
	}
	args, err := shlex.Split(line)
	if err != nil {
		return protocol.FormatError("splitting line: " + err.Error())
	}
	req, err := replRequest(args)
	if err != nil {
		return protocol.FormatError(err.Error())
	}
	return svc.Handle(ctx, req)
}

// replRequest turns a shell-style command into a request line.
func replRequest(args []string) (string, error) {
	switch {
	case len(args) == 4 && args[0] == "convert":
		return strings.Join(args, ","), nil
	case len(args) == 5 && args[0] == "arith":
		return strings.Join([]string{string(protocol.KindArith), args[1], args[3], args[4], args[2]}, ","), nil
	}
	return "", errReplUsage
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
