// Package packages provisions the package catalog through the system
// package manager.
//
// Installation is best-effort: a package that cannot be queried is still
// installed, and a package that cannot be installed is reported and
// skipped. Nothing in this package aborts a run.
//
// The audio stack is chosen once per run by SelectAudio: a running media
// server selects the modern stack, a missing control client selects the
// legacy stack, and otherwise audio is left alone.
package packages
