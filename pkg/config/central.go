package config

import (
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Source holds the location of the configuration source tree
type Source struct {
	Root string `koanf:"root" toml:"root"`
}

// WM holds window-manager specific settings
type WM struct {
	Name string `koanf:"name" toml:"name"`
	// ConfigDir is relative to the user's config home
	ConfigDir  string `koanf:"config_dir" toml:"config_dir"`
	ConfigFile string `koanf:"config_file" toml:"config_file"`
	Fragment   string `koanf:"fragment" toml:"fragment"`
	Marker     string `koanf:"marker" toml:"marker"`
	Directive  string `koanf:"directive" toml:"directive"`
	Anchor     string `koanf:"anchor" toml:"anchor"`
	// StatusRefresh is appended to volume bindings to refresh the status bar
	StatusRefresh string `koanf:"status_refresh" toml:"status_refresh"`
}

// Packages holds the package catalog and manager selection
type Packages struct {
	Manager string   `koanf:"manager" toml:"manager"`
	Catalog []string `koanf:"catalog" toml:"catalog"`
	// Names maps a manager name to package renames for that manager
	Names map[string]map[string]string `koanf:"names" toml:"names"`
}

// Hardware holds probe locations
type Hardware struct {
	BacklightDir string `koanf:"backlight_dir" toml:"backlight_dir"`
}

// Link is a LinkSpec with paths relative to the source root and home
type Link struct {
	Source      string `koanf:"source" toml:"source"`
	Destination string `koanf:"destination" toml:"destination"`
	Kind        string `koanf:"kind" toml:"kind"`
}

// Scripts holds the script fan-out directories
type Scripts struct {
	Source      string `koanf:"source" toml:"source"`
	Destination string `koanf:"destination" toml:"destination"`
}

// Wallpaper holds wallpaper selection settings
type Wallpaper struct {
	Source      string   `koanf:"source" toml:"source"`
	Destination string   `koanf:"destination" toml:"destination"`
	Script      string   `koanf:"script" toml:"script"`
	Extensions  []string `koanf:"extensions" toml:"extensions"`
}

// Fonts holds font installation settings
type Fonts struct {
	Source      string `koanf:"source" toml:"source"`
	Destination string `koanf:"destination" toml:"destination"`
	Fontconfig  string `koanf:"fontconfig" toml:"fontconfig"`
}

// Config is the main configuration structure
type Config struct {
	Source    Source            `koanf:"source" toml:"source"`
	WM        WM                `koanf:"wm" toml:"wm"`
	Packages  Packages          `koanf:"packages" toml:"packages"`
	Audio     types.AudioStacks `koanf:"audio" toml:"audio"`
	Hardware  Hardware          `koanf:"hardware" toml:"hardware"`
	Links     []Link            `koanf:"links" toml:"links"`
	Scripts   Scripts           `koanf:"scripts" toml:"scripts"`
	Wallpaper Wallpaper         `koanf:"wallpaper" toml:"wallpaper"`
	Fonts     Fonts             `koanf:"fonts" toml:"fonts"`
}

// Catalog returns the package catalog described by the configuration
func (c *Config) Catalog() types.PackageCatalog {
	return types.PackageCatalog{
		Packages: append([]string(nil), c.Packages.Catalog...),
		Audio:    c.Audio,
		Names:    c.Packages.Names,
	}
}
