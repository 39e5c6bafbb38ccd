package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/calc"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/validate"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/store/session"
)

// CLI inspects saved wizard sessions from the command line: listing them,
// re-running validation, and printing a return summary report.
type CLI struct {
	catalog   *catalog.Catalog
	registry  *calc.Registry
	validator *validate.Validator
	store     session.Store
	reporter  *Reporter
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI.
type Options struct {
	Catalog   *catalog.Catalog
	Registry  *calc.Registry
	Validator *validate.Validator
	Store     session.Store
	Output    io.Writer
}

// NewCLI creates a new CLI instance.
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		catalog:   opts.Catalog,
		registry:  opts.Registry,
		validator: opts.Validator,
		store:     opts.Store,
		reporter:  NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxreturn",
		Short: "Inspect saved tax wizard sessions",
	}

	cmd.AddCommand(cli.newSessionsCmd())
	cmd.AddCommand(cli.newReportCmd())
	cmd.AddCommand(cli.newValidateCmd())

	return cmd
}
