package hardware

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Warning markers
const (
	WarnUnknownVendor = "unknown-vendor"
	WarnNoBacklight   = "no-backlight"
)

// DefaultBacklightDir is where the kernel exposes backlight devices
const DefaultBacklightDir = "/sys/class/backlight"

// displayClasses are the lspci class names of graphics devices
var displayClasses = []string{"vga compatible controller", "3d controller", "display controller"}

// Prober supplies the raw inputs of detection.
type Prober interface {
	// Descriptors lists display-class hardware descriptions.
	Descriptors(ctx context.Context) ([]string, error)
	// Backlights lists the backlight device names.
	Backlights() ([]string, error)
	// HasXbacklight reports whether xbacklight is on PATH.
	HasXbacklight() bool
}

// SystemProber reads lspci and the backlight class directory.
type SystemProber struct {
	Runner       executor.Runner
	FS           types.FS
	BacklightDir string
}

// NewSystemProber creates a prober for the running system.
func NewSystemProber(runner executor.Runner, fs types.FS, backlightDir string) *SystemProber {
	if backlightDir == "" {
		backlightDir = DefaultBacklightDir
	}
	return &SystemProber{Runner: runner, FS: fs, BacklightDir: backlightDir}
}

// Descriptors implements Prober.
func (p *SystemProber) Descriptors(ctx context.Context) ([]string, error) {
	out, err := p.Runner.Run(ctx, "lspci")
	if err != nil {
		return nil, err
	}
	return DisplayDescriptors(out), nil
}

// Backlights implements Prober. A missing directory means no devices.
func (p *SystemProber) Backlights() ([]string, error) {
	entries, err := p.FS.ReadDir(p.BacklightDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// HasXbacklight implements Prober.
func (p *SystemProber) HasXbacklight() bool {
	_, err := p.Runner.LookPath("xbacklight")
	return err == nil
}

// DisplayDescriptors keeps the lspci lines describing display devices.
func DisplayDescriptors(lspci []byte) []string {
	var out []string
	scanner := bufio.NewScanner(bytes.NewReader(lspci))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lower := strings.ToLower(line)
		for _, class := range displayClasses {
			if strings.Contains(lower, class) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

// Detect builds the HardwareProfile. Probe failures are logged and treated
// as empty input.
func Detect(ctx context.Context, prober Prober) types.HardwareProfile {
	logger := logging.GetLogger("hardware")

	descriptors, err := prober.Descriptors(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Hardware listing failed, continuing without descriptors")
	}
	chipset := Classify(descriptors)
	if chipset == types.ChipsetUnknown {
		logging.Warning(logger, WarnUnknownVendor).
			Int("descriptors", len(descriptors)).
			Msg("Graphics vendor not recognised")
	}

	backlights, err := prober.Backlights()
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot enumerate backlight devices")
	}
	device := FindDevice(chipset, backlights)
	if device == "" {
		logging.Warning(logger, WarnNoBacklight).Msg("No backlight device found")
	}

	hasXbacklight := false
	if device == "" && chipset == types.ChipsetNvidia {
		hasXbacklight = prober.HasXbacklight()
	}

	profile := types.HardwareProfile{
		Chipset: chipset,
		Device:  device,
		Method:  ChooseMethod(chipset, device, hasXbacklight),
	}
	logger.Info().
		Str("chipset", string(profile.Chipset)).
		Str("device", profile.DeviceLabel()).
		Str("method", string(profile.Method)).
		Msg("Hardware detected")
	return profile
}
