// Package fragment renders the brightness and volume key bindings included
// by the window manager's main config.
//
// The fragment is the one file dotrig fully owns: it is rendered from the
// HardwareProfile and overwritten on every run. Rendering is pure; Write is
// the only side effect.
package fragment
