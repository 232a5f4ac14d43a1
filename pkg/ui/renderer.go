package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result: a *provision.Report, a
	// types.HardwareProfile or a []provision.StatusEntry
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return &textRenderer{out: output, styled: true}, nil
	case FormatText:
		return &textRenderer{out: output}, nil
	case FormatJSON:
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return &encodingRenderer{encode: enc.Encode}, nil
	case FormatYAML:
		return &encodingRenderer{encode: func(v interface{}) error {
			enc := yaml.NewEncoder(output)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		}}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

// encodingRenderer serialises results for machine consumption
type encodingRenderer struct {
	encode func(v interface{}) error
}

func (r *encodingRenderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

func (r *encodingRenderer) RenderError(err error) error {
	obj := map[string]interface{}{"error": err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		obj["code"] = string(code)
	}
	return r.encode(obj)
}

func (r *encodingRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

// textRenderer writes human readable output, optionally styled
type textRenderer struct {
	out    io.Writer
	styled bool
}

func (r *textRenderer) paint(style, s string) string {
	if !r.styled || s == "" {
		return s
	}
	return Style(style).Render(s)
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.out, "%s %v\n", r.paint("Error", "error:"), err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}
