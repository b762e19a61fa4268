package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/govalues/radix/internal/protocol"
	"github.com/govalues/radix/internal/service"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Output string
	Format string
	Jobs   int
}

// BatchFile is the input of the batch command.
type BatchFile struct {
	Requests []BatchRequest `yaml:"requests"`
}

// BatchRequest is one request of a batch file. Exactly one field is set.
type BatchRequest struct {
	Line    string        `yaml:"line,omitempty"`
	Convert *BatchConvert `yaml:"convert,omitempty"`
	Arith   *BatchArith   `yaml:"arith,omitempty"`
}

// BatchConvert is a convert request.
type BatchConvert struct {
	Value string `yaml:"value"`
	From  int    `yaml:"from"`
	To    int    `yaml:"to"`
}

// BatchArith is an arithmetic request.
type BatchArith struct {
	A    string `yaml:"a"`
	B    string `yaml:"b"`
	Base int    `yaml:"base"`
	Op   string `yaml:"op"`
}

// BatchReport is the output of the batch command, in input order.
type BatchReport struct {
	Results []BatchResult `yaml:"results"`
}

// BatchResult is the outcome of one request.
type BatchResult struct {
	Request string `yaml:"request"`
	Result  string `yaml:"result,omitempty"`
	Code    string `yaml:"code,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Evaluate the requests of a YAML file",
		Long: `Evaluate the requests listed in a YAML file and write the results as YAML.

Example file:
  requests:
    - convert: {value: "0.1(6)", from: 10, to: 12}
    - arith: {a: "1", b: "3", base: 10, op: "/"}
    - line: "convert,FF,16,2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write results to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "yaml", "output format (yaml|table)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.NumCPU(), "requests evaluated in parallel")

	return cmd
}

func runBatch(cmd *cobra.Command, opts *BatchOptions, path string) error {
	if opts.Format != "yaml" && opts.Format != "table" {
		return fmt.Errorf("invalid format %q: must be yaml or table", opts.Format)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}
	var file BatchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decoding batch file %q: %w", path, err)
	}
	svc, err := opts.newService(cmd)
	if err != nil {
		return err
	}
	report, err := evalBatch(cmd.Context(), svc, file.Requests, opts.Jobs)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if opts.Format == "table" {
		return writeTable(out, report)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return enc.Close()
}

func writeTable(out io.Writer, report BatchReport) error {
	table := tablewriter.NewWriter(out)
	table.Header("Request", "Result", "Code", "Error")
	for _, r := range report.Results {
		if err := table.Append([]string{r.Request, r.Result, r.Code, r.Error}); err != nil {
			return fmt.Errorf("appending row %q: %w", r.Request, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

// evalBatch evaluates reqs with at most jobs in flight.
// Request failures are recorded in the report, not returned.
func evalBatch(ctx context.Context, svc *service.Service, reqs []BatchRequest, jobs int) (BatchReport, error) {
	results := make([]BatchResult, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, br := range reqs {
		g.Go(func() error {
			req, err := br.request()
			if err == nil {
				var resp string
				resp, err = svc.Do(ctx, req)
				results[i] = BatchResult{Request: req.String(), Result: resp}
			} else {
				results[i] = BatchResult{Request: br.Line}
			}
			if err != nil {
				d := service.Diagnose(err)
				results[i].Code = d.Code
				results[i].Error = d.Message
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return BatchReport{}, err
	}
	return BatchReport{Results: results}, nil
}

func (br BatchRequest) request() (protocol.Request, error) {
	switch {
	case br.Convert != nil:
		return protocol.NewConvert(br.Convert.Value, br.Convert.From, br.Convert.To), nil
	case br.Arith != nil:
		return protocol.NewArith(br.Arith.A, br.Arith.B, br.Arith.Base, protocol.Operator(br.Arith.Op)), nil
	case br.Line != "":
		return protocol.Parse(br.Line)
	}
	return protocol.Request{}, fmt.Errorf("batch request sets no field: %w", protocol.ErrMalformed)
}
