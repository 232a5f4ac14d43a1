package provision

import (
	"github.com/arthur-debert/dotrig/pkg/config"
	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/linker"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/paths"
	"github.com/arthur-debert/dotrig/pkg/privilege"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// PrepareOptions are the inputs of stage 1.
type PrepareOptions struct {
	Resolver *privilege.Resolver
	// User overrides SUDO_USER
	User     string
	Elevated bool
	// SourceRoot is the --source flag
	SourceRoot string
	Overrides  map[string]interface{}
}

// Plan is everything later stages need to know about the target user.
type Plan struct {
	Identity types.Identity
	Elevated bool
	Config   *config.Config
	Paths    types.ResolvedPaths
}

// Prepare resolves identity, configuration and paths. Identity failures
// are ErrConfiguration; a broken configuration file is reported as-is.
func Prepare(opts PrepareOptions) (*Plan, error) {
	logger := logging.GetLogger("provision")

	resolver := opts.Resolver
	if resolver == nil {
		resolver = privilege.NewResolver()
	}
	identity, err := resolver.ResolveInvoker(opts.User, opts.Elevated)
	if err != nil {
		return nil, err
	}

	configHome := paths.ConfigHome(identity, opts.Elevated)

	// The source root may itself come from the user's config, so the
	// configuration is read once without the source tree layer first.
	bootstrap, err := config.Load(config.LoadOptions{UserConfigHome: configHome, Overrides: opts.Overrides})
	if err != nil {
		return nil, err
	}
	explicit := opts.SourceRoot
	if explicit == "" {
		explicit = bootstrap.Source.Root
	}
	sourceRoot, err := paths.FindSourceRoot(explicit, identity.Home)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.LoadOptions{
		SourceRoot:     sourceRoot,
		UserConfigHome: configHome,
		Overrides:      opts.Overrides,
	})
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Identity: identity,
		Elevated: opts.Elevated,
		Config:   cfg,
		Paths:    paths.Resolve(identity, configHome, sourceRoot, cfg),
	}
	logger.Info().
		Str("user", identity.Username).
		Str("home", plan.Paths.Home).
		Str("source", plan.Paths.SourceRoot).
		Bool("elevated", opts.Elevated).
		Msg("Plan prepared")
	return plan, nil
}

// LinkSpecs returns the configured links followed by one entry per script.
func (p *Plan) LinkSpecs(fs types.FS) ([]types.LinkSpec, error) {
	specs := paths.LinkSpecs(p.Config.Links, p.Paths)
	if p.Config.Scripts.Source == "" {
		return specs, nil
	}
	scripts, err := linker.FanOut(fs,
		paths.InSource(p.Paths, p.Config.Scripts.Source),
		paths.InHome(p.Paths, p.Config.Scripts.Destination))
	if err != nil {
		return specs, errors.Wrap(err, errors.ErrFileAccess, "failed to enumerate scripts")
	}
	return append(specs, scripts...), nil
}

// fontDirs locates the font assets for this plan.
func (p *Plan) fontDirs() (src, dst, fontconfigPath string) {
	f := p.Config.Fonts
	src = paths.InSource(p.Paths, f.Source)
	dst = paths.InHome(p.Paths, f.Destination)
	if f.Fontconfig != "" {
		fontconfigPath = paths.InHome(p.Paths, f.Fontconfig)
	}
	return src, dst, fontconfigPath
}

func (p *Plan) wallpaperDirs() (dst, script string) {
	w := p.Config.Wallpaper
	return paths.InHome(p.Paths, w.Destination), paths.InHome(p.Paths, w.Script)
}
