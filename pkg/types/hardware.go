package types

// Chipset is the detected graphics vendor.
type Chipset string

const (
	ChipsetIntel   Chipset = "intel"
	ChipsetAMD     Chipset = "amd"
	ChipsetNvidia  Chipset = "nvidia"
	ChipsetUnknown Chipset = "unknown"
)

// BrightnessMethod is the tool the generated bindings call.
type BrightnessMethod string

const (
	MethodBrightnessctl BrightnessMethod = "brightnessctl"
	MethodXbacklight    BrightnessMethod = "xbacklight"
	MethodNone          BrightnessMethod = "none"
)

// HardwareProfile is produced once per run by probing and never modified.
// An empty Device means no backlight device was found.
type HardwareProfile struct {
	Chipset Chipset          `json:"chipset" yaml:"chipset"`
	Device  string           `json:"device,omitempty" yaml:"device,omitempty"`
	Method  BrightnessMethod `json:"method" yaml:"method"`
}

// HasDevice reports whether a backlight device was found.
func (p HardwareProfile) HasDevice() bool {
	return p.Device != ""
}

// DeviceLabel returns the device name or "none".
func (p HardwareProfile) DeviceLabel() string {
	if p.Device == "" {
		return "none"
	}
	return p.Device
}

// Fragment is generated configuration content owned entirely by dotrig.
type Fragment struct {
	Path    string
	Content []byte
}
