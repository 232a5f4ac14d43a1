// Package hardware probes the graphics chipset and backlight device and
// chooses how brightness is controlled.
//
// Detection is a pure decision tree over two inputs, the display-class
// hardware descriptors and the backlight device names, so that every
// branch can be tested without real hardware. Detect never fails: missing
// inputs produce the degraded profile {unknown, none, brightnessctl}.
package hardware
