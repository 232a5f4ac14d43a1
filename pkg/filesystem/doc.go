// Package filesystem provides filesystem implementations for dotrig.
//
// This package contains the OS implementation of types.FS and the owned
// wrapper that hands every created entry to the invoking user when dotrig
// runs elevated. The wrapper is the privilege boundary for the
// materialization stage: code below it never needs to know whether it is
// running as root.
package filesystem
