package fragment

import (
	"bytes"
	"embed"
	"path/filepath"
	"text/template"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// DefaultStep is the brightness and volume change per key press, in percent
const DefaultStep = 5

// Options tune rendering.
type Options struct {
	// Step is the per-press change in percent. Zero means DefaultStep.
	Step int
	// StatusRefresh is run after every volume change, e.g. a signal to the
	// status bar. Empty disables it.
	StatusRefresh string
}

type data struct {
	Profile types.HardwareProfile
	Step    int
	Refresh string
}

// brightnessTemplate selects the template for the profile's method
func brightnessTemplate(p types.HardwareProfile) string {
	switch {
	case p.Method == types.MethodXbacklight:
		return "xbacklight.tmpl"
	case p.HasDevice():
		return "brightnessctl-device.tmpl"
	default:
		return "brightnessctl.tmpl"
	}
}

// Render produces the fragment content for profile.
func Render(profile types.HardwareProfile, opts Options) ([]byte, error) {
	d := data{Profile: profile, Step: opts.Step}
	if d.Step <= 0 {
		d.Step = DefaultStep
	}
	if opts.StatusRefresh != "" {
		d.Refresh = " && " + opts.StatusRefresh
	}

	var buf bytes.Buffer
	for _, name := range []string{"header.tmpl", brightnessTemplate(profile), "volume.tmpl"} {
		if err := templates.ExecuteTemplate(&buf, name, d); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTemplate, "failed to render %s", name)
		}
	}
	return buf.Bytes(), nil
}

// Generate renders profile into a Fragment destined for path.
func Generate(profile types.HardwareProfile, path string, opts Options) (types.Fragment, error) {
	content, err := Render(profile, opts)
	if err != nil {
		return types.Fragment{}, err
	}
	return types.Fragment{Path: path, Content: content}, nil
}

// Write overwrites the fragment file, creating its directory if needed.
func Write(fs types.FS, frag types.Fragment) error {
	logger := logging.GetLogger("fragment")

	if err := fs.MkdirAll(filepath.Dir(frag.Path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(frag.Path))
	}
	if err := fs.WriteFile(frag.Path, frag.Content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write fragment %s", frag.Path)
	}

	logger.Info().Str("path", frag.Path).Int("bytes", len(frag.Content)).Msg("Fragment written")
	return nil
}
