package dotrig

import (
	"fmt"

	"github.com/arthur-debert/dotrig/pkg/config"
	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/hardware"
	"github.com/arthur-debert/dotrig/pkg/provision"
	"github.com/spf13/cobra"
)

// newProber builds the hardware prober for detect. Tests replace it.
var newProber = func(backlightDir string) hardware.Prober {
	return hardware.NewSystemProber(executor.NewCommandExecutor(), filesystem.NewOS(), backlightDir)
}

func newDetectCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "detect",
		Short:   MsgDetectShort,
		Long:    MsgDetectLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, output)
			if err != nil {
				return err
			}
			cfg, err := config.Load(config.LoadOptions{})
			if err != nil {
				return fmt.Errorf(MsgErrConfig, err)
			}
			profile := hardware.Detect(cmd.Context(), newProber(cfg.Hardware.BacklightDir))
			return renderer.RenderResult(profile)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "auto", MsgFlagOutput)
	return cmd
}

func newStatusCmd() *cobra.Command {
	var (
		source string
		output string
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
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
			entries, err := provision.Status(plan, filesystem.NewOS())
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}
			return renderer.RenderResult(entries)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", MsgFlagSource)
	cmd.Flags().StringVarP(&output, "output", "o", "auto", MsgFlagOutput)
	return cmd
}
