// Package types defines the core types and interfaces shared by every
// provisioning stage: the filesystem abstraction, link specifications and
// destination states, the hardware profile, the package catalog, and the
// identity/paths values threaded from one stage to the next.
package types
