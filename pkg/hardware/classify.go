package hardware

import (
	"sort"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/types"
)

// vendorRule pairs a chipset with the substrings that identify it
type vendorRule struct {
	chipset  types.Chipset
	keywords []string
}

// vendorRules are evaluated in order; the first match wins.
// "ati" alone would match "corporation", so ATI is matched by its full name.
var vendorRules = []vendorRule{
	{types.ChipsetIntel, []string{"intel"}},
	{types.ChipsetAMD, []string{"amd", "ati technologies", "radeon", "advanced micro devices"}},
	{types.ChipsetNvidia, []string{"nvidia"}},
}

// backlightPriority lists well-known device names per vendor
var backlightPriority = map[types.Chipset][]string{
	types.ChipsetIntel:  {"intel_backlight"},
	types.ChipsetAMD:    {"amdgpu_bl0", "amdgpu_bl1", "radeon_bl0"},
	types.ChipsetNvidia: {"nvidia_0", "nv_backlight", "acpi_video0"},
}

// Classify returns the chipset of the first vendor rule that matches any
// descriptor, case-insensitively.
func Classify(descriptors []string) types.Chipset {
	lowered := make([]string, len(descriptors))
	for i, d := range descriptors {
		lowered[i] = strings.ToLower(d)
	}
	for _, rule := range vendorRules {
		for _, d := range lowered {
			for _, kw := range rule.keywords {
				if strings.Contains(d, kw) {
					return rule.chipset
				}
			}
		}
	}
	return types.ChipsetUnknown
}

// FindDevice picks a backlight device from available: the vendor's
// preferred names first, then the first available name in sorted order.
// It returns "" when nothing is available.
func FindDevice(chipset types.Chipset, available []string) string {
	if len(available) == 0 {
		return ""
	}
	present := make(map[string]bool, len(available))
	for _, name := range available {
		present[name] = true
	}
	for _, name := range backlightPriority[chipset] {
		if present[name] {
			return name
		}
	}
	sorted := append([]string(nil), available...)
	sort.Strings(sorted)
	return sorted[0]
}

// ChooseMethod decides which tool the brightness bindings call.
func ChooseMethod(chipset types.Chipset, device string, hasXbacklight bool) types.BrightnessMethod {
	if device != "" {
		return types.MethodBrightnessctl
	}
	if chipset == types.ChipsetNvidia && hasXbacklight {
		return types.MethodXbacklight
	}
	return types.MethodBrightnessctl
}
