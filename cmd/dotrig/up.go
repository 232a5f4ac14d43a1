package dotrig

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/privilege"
	"github.com/arthur-debert/dotrig/pkg/provision"
	"github.com/spf13/cobra"
)

func newUpCmd() *cobra.Command {
	var (
		source       string
		user         string
		manager      string
		output       string
		dryRun       bool
		skipPackages bool
	)

	cmd := &cobra.Command{
		Use:     "up",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		Example: MsgUpExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.up")
			renderer, err := newRenderer(cmd, output)
			if err != nil {
				return err
			}

			if !dryRun {
				// Replaces this process when not root
				if err := privilege.Elevate(os.Args[1:]); err != nil {
					return err
				}
			}

			overrides := map[string]interface{}{}
			if manager != "" {
				overrides["packages.manager"] = manager
			}
			plan, err := provision.Prepare(provision.PrepareOptions{
				User:       user,
				Elevated:   isElevated(),
				SourceRoot: source,
				Overrides:  overrides,
			})
			if err != nil {
				return fmt.Errorf(MsgErrPrepare, err)
			}

			logger.Info().
				Bool("dryRun", dryRun).
				Bool("skipPackages", skipPackages).
				Msg("Starting provisioning")

			report := provision.Run(cmd.Context(), plan, newDeps(plan), provision.RunOptions{
				DryRun:       dryRun,
				SkipPackages: skipPackages,
			})

			return renderer.RenderResult(report)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", MsgFlagSource)
	cmd.Flags().StringVar(&user, "user", "", MsgFlagUser)
	cmd.Flags().StringVar(&manager, "manager", "", MsgFlagManager)
	cmd.Flags().StringVarP(&output, "output", "o", "auto", MsgFlagOutput)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&skipPackages, "skip-packages", false, MsgFlagSkipPackages)
	return cmd
}

func newLinkCmd() *cobra.Command {
	var (
		source string
		output string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, output)
			if err != nil {
				return err
			}
			plan, err := provision.Prepare(provision.PrepareOptions{
				Elevated:   isElevated(),
				SourceRoot: source,
			})
			if err != nil {
				return fmt.Errorf(MsgErrPrepare, err)
			}

			report := provision.Run(cmd.Context(), plan, newDeps(plan), provision.RunOptions{
				DryRun:       dryRun,
				SkipPackages: true,
			})

			return renderer.RenderResult(report)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", MsgFlagSource)
	cmd.Flags().StringVarP(&output, "output", "o", "auto", MsgFlagOutput)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}
