// Package provision runs the provisioning stages in order.
//
// Prepare performs stage 1: it resolves the invoking user, loads the
// layered configuration and derives every path. Its error is the only one
// that stops a run. Run then executes the remaining stages, package
// provisioning, hardware detection with fragment generation and linking,
// and records everything that happened in a Report.
//
// All home-directory mutations in Run go through an owned filesystem and a
// runner bound to the invoking user, so an elevated run never leaves
// root-owned files behind.
package provision
