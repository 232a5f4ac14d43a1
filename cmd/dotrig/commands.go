package dotrig

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotrig/internal/version"
	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/privilege"
	"github.com/arthur-debert/dotrig/pkg/provision"
	"github.com/arthur-debert/dotrig/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "dotrig",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity, "")
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but still fail
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newGuideCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// isElevated reports whether the process runs as root. Tests replace it.
var isElevated = privilege.IsElevated

// newDeps builds the collaborators of a run. Tests replace it.
var newDeps = func(plan *provision.Plan) provision.Deps {
	styled := ui.IsTerminal(os.Stderr)
	deps := provision.Deps{
		FS:         filesystem.NewOS(),
		Runner:     executor.NewCommandExecutor(),
		Installer:  executor.NewCommandExecutor().WithPassthrough(),
		UserRunner: executor.NewCommandExecutor().AsUser(plan.Identity, plan.Elevated),
		OnStage: func(name string) {
			ui.Section(os.Stderr, name, styled)
		},
	}
	if progress := ui.NewPackageProgress(); progress != nil {
		deps.Progress = progress
	}
	return deps
}

// ReportError writes err to w in the error style. Fatal errors, which
// stop a run before anything is changed, get a hint on how to recover.
func ReportError(w io.Writer, err error) {
	errorStyle := ui.Style("Error")
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	if errors.IsFatal(err) {
		fmt.Fprintln(w, MsgFatalHint)
	}
}

// newRenderer parses an --output value and returns a renderer writing to
// the command's stdout.
func newRenderer(cmd *cobra.Command, output string) (ui.Renderer, error) {
	format, err := ui.ParseFormat(output)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}
