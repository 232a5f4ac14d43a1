// Package assets copies fonts and wallpapers into the user's home.
//
// Copies are best-effort. A missing source tree means there is nothing to
// install, and individual copy failures are counted and logged but never
// stop the run.
package assets
