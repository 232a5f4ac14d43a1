package hardware

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/testutil"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lspciOutput = `00:00.0 Host bridge: Intel Corporation Device 4621 (rev 02)
00:02.0 VGA compatible controller: Intel Corporation Alder Lake-P GT2 [Iris Xe Graphics] (rev 0c)
00:14.0 USB controller: Intel Corporation Alder Lake PCH USB 3.2 xHCI Host Controller (rev 01)
01:00.0 3D controller: NVIDIA Corporation GA107M [GeForce RTX 3050 Mobile] (rev a1)
02:00.0 Non-Volatile memory controller: Samsung Electronics Co Ltd NVMe SSD Controller
`

func TestDisplayDescriptors(t *testing.T) {
	got := DisplayDescriptors([]byte(lspciOutput))
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Iris Xe")
	assert.Contains(t, got[1], "GeForce")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []string
		want        types.Chipset
	}{
		{"intel", []string{"VGA compatible controller: Intel Corporation UHD Graphics 620"}, types.ChipsetIntel},
		{"amd", []string{"VGA compatible controller: Advanced Micro Devices, Inc. [AMD/ATI] Rembrandt"}, types.ChipsetAMD},
		{"radeon", []string{"VGA compatible controller: Radeon HD 7850"}, types.ChipsetAMD},
		{"ati", []string{"VGA compatible controller: ATI Technologies Inc RV710"}, types.ChipsetAMD},
		{"nvidia", []string{"VGA compatible controller: NVIDIA Corporation TU104"}, types.ChipsetNvidia},
		{"case insensitive", []string{"3d controller: nViDiA thing"}, types.ChipsetNvidia},
		{"intel wins over nvidia in one line", []string{"intel and nvidia hybrid"}, types.ChipsetIntel},
		{"intel wins over nvidia across lines", []string{"NVIDIA Corporation GA107M", "Intel Corporation Iris Xe"}, types.ChipsetIntel},
		{"amd wins over nvidia", []string{"NVIDIA Corporation", "AMD Radeon"}, types.ChipsetAMD},
		{"unknown vendor", []string{"VGA compatible controller: Matrox Electronics Systems Ltd. G200eR2"}, types.ChipsetUnknown},
		{"no descriptors", nil, types.ChipsetUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.descriptors))
		})
	}
}

func TestFindDevice(t *testing.T) {
	tests := []struct {
		name      string
		chipset   types.Chipset
		available []string
		want      string
	}{
		{"intel preferred", types.ChipsetIntel, []string{"acpi_video0", "intel_backlight"}, "intel_backlight"},
		{"amd priority order", types.ChipsetAMD, []string{"radeon_bl0", "amdgpu_bl1"}, "amdgpu_bl1"},
		{"nvidia preferred", types.ChipsetNvidia, []string{"acpi_video0", "nv_backlight"}, "nv_backlight"},
		{"fallback to first sorted", types.ChipsetIntel, []string{"zz_panel", "acpi_video1"}, "acpi_video1"},
		{"unknown chipset takes first", types.ChipsetUnknown, []string{"intel_backlight"}, "intel_backlight"},
		{"nothing available", types.ChipsetIntel, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindDevice(tt.chipset, tt.available))
		})
	}
}

func TestChooseMethod(t *testing.T) {
	assert.Equal(t, types.MethodBrightnessctl, ChooseMethod(types.ChipsetIntel, "intel_backlight", false))
	assert.Equal(t, types.MethodBrightnessctl, ChooseMethod(types.ChipsetNvidia, "nv_backlight", true))
	assert.Equal(t, types.MethodXbacklight, ChooseMethod(types.ChipsetNvidia, "", true))
	assert.Equal(t, types.MethodBrightnessctl, ChooseMethod(types.ChipsetNvidia, "", false))
	assert.Equal(t, types.MethodBrightnessctl, ChooseMethod(types.ChipsetAMD, "", true))
}

type stubProber struct {
	descriptors []string
	descErr     error
	backlights  []string
	xbacklight  bool
}

func (s stubProber) Descriptors(context.Context) ([]string, error) { return s.descriptors, s.descErr }
func (s stubProber) Backlights() ([]string, error)                 { return s.backlights, nil }
func (s stubProber) HasXbacklight() bool                           { return s.xbacklight }

func TestDetect(t *testing.T) {
	ctx := context.Background()

	t.Run("degraded profile", func(t *testing.T) {
		got := Detect(ctx, stubProber{descriptors: []string{"Matrox G200"}})
		assert.Equal(t, types.HardwareProfile{Chipset: types.ChipsetUnknown, Method: types.MethodBrightnessctl}, got)
		assert.Equal(t, "none", got.DeviceLabel())
	})

	t.Run("listing failure is not an error", func(t *testing.T) {
		got := Detect(ctx, stubProber{descErr: errors.New("lspci: not found"), backlights: []string{"acpi_video0"}})
		assert.Equal(t, types.ChipsetUnknown, got.Chipset)
		assert.Equal(t, "acpi_video0", got.Device)
	})

	t.Run("nvidia without backlight uses xbacklight", func(t *testing.T) {
		got := Detect(ctx, stubProber{descriptors: []string{"NVIDIA Corporation"}, xbacklight: true})
		assert.Equal(t, types.MethodXbacklight, got.Method)
	})

	t.Run("intel laptop", func(t *testing.T) {
		got := Detect(ctx, stubProber{descriptors: []string{"Intel Corporation"}, backlights: []string{"intel_backlight"}})
		assert.Equal(t, types.HardwareProfile{Chipset: types.ChipsetIntel, Device: "intel_backlight", Method: types.MethodBrightnessctl}, got)
	})
}

func TestSystemProber(t *testing.T) {
	dir := t.TempDir()
	backlight := filepath.Join(dir, "backlight")
	require.NoError(t, os.MkdirAll(filepath.Join(backlight, "intel_backlight"), 0755))

	runner := testutil.NewFakeRunner().On("lspci", testutil.FakeResponse{Output: lspciOutput})
	p := NewSystemProber(runner, filesystem.NewOS(), backlight)

	got := Detect(context.Background(), p)
	assert.Equal(t, types.HardwareProfile{Chipset: types.ChipsetIntel, Device: "intel_backlight", Method: types.MethodBrightnessctl}, got)

	t.Run("missing backlight dir", func(t *testing.T) {
		p := NewSystemProber(runner, filesystem.NewOS(), filepath.Join(dir, "nope"))
		names, err := p.Backlights()
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
