package cli

import (
	"errors"
	"fmt"

	"github.com/govalues/radix/internal/protocol"
	"github.com/govalues/radix/internal/service"
	"github.com/spf13/cobra"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	From int
	To   int
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <number>",
		Short: "Render a number in another base",
		Long: `Render a number, written in the --from base, in the --to base.

Repeating digits are enclosed in parentheses. Use -- before a negative number.

Example:
  radix convert 0.1(6) --from 10 --to 12
  radix convert --from 16 --to 2 -- -7F`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			resp, err := svc.Convert(cmd.Context(), args[0], opts.From, opts.To)
			if err != nil {
				return errors.New(service.Diagnose(err).Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.From, "from", 10, "base the number is written in")
	cmd.Flags().IntVar(&opts.To, "to", 10, "base to render the number in")

	return cmd
}

// ArithOptions holds flags for the arith command.
type ArithOptions struct {
	*RootOptions
	Base int
}

// NewArithCommand creates the arith command.
func NewArithCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArithOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "arith <a> <op> <b>",
		Short: "Evaluate exact arithmetic on two numbers",
		Long: `Evaluate "a op b" exactly, where op is one of + - * /.
Operands and the result are written in the --base base.

Example:
  radix arith 0.(3) + 0.(6)
  radix arith --base 2 -- 1.1 * -1.1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			req := protocol.NewArith(args[0], args[2], opts.Base, protocol.Operator(args[1]))
			resp, err := svc.Do(cmd.Context(), req)
			if err != nil {
				return errors.New(service.Diagnose(err).Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Base, "base", 10, "base of the operands and the result")

	return cmd
}
