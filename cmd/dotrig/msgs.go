package dotrig

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Provision a personal i3 workstation"
	MsgUpShort         = "Install packages, generate bindings and link configuration"
	MsgLinkShort       = "Generate bindings and link configuration as the current user"
	MsgDetectShort     = "Show the detected graphics chipset and backlight"
	MsgStatusShort     = "Show the state of every link destination"
	MsgConfigShort     = "Print the effective configuration as TOML"
	MsgGuideShort      = "Show the user guide"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "dotrig version %s\n  commit: %s\n  built:  %s\n"
	MsgNoCommand     = "no command specified"

	// Error messages
	MsgErrPrepare = "failed to prepare run: %w"
	MsgErrStatus  = "failed to inspect links: %w"
	MsgErrConfig  = "failed to load configuration: %w"
	MsgFatalHint  = "dotrig cannot tell whose home directory to provision. Run it through sudo from your own account, or pass --user."

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun       = "Report what would change without changing anything"
	MsgFlagSource       = "Configuration source tree (default: $DOTFILES_ROOT, the git toplevel or the current directory)"
	MsgFlagSkipPackages = "Do not install packages"
	MsgFlagUser         = "Provision this user instead of $SUDO_USER"
	MsgFlagManager      = "Package manager to use (pacman, apt, dnf or auto)"
	MsgFlagOutput       = "Output format (auto, text, json, yaml)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/up-long.txt
	msgUpLongRaw string
	MsgUpLong    = strings.TrimSpace(msgUpLongRaw)

	//go:embed msgs/up-example.txt
	msgUpExampleRaw string
	MsgUpExample    = strings.TrimSpace(msgUpExampleRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/detect-long.txt
	msgDetectLongRaw string
	MsgDetectLong    = strings.TrimSpace(msgDetectLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/guide.md
	MsgGuide string
)
