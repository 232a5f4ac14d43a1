// Package privilege handles self-elevation and resolves the identity of the
// user dotrig provisions for.
//
// A run is elevated for package installation, but every home-directory
// mutation belongs to the user who invoked sudo. ResolveInvoker finds that
// user from SUDO_USER (or an explicit override); failing to do so is the one
// fatal error of a run.
package privilege
