// Package executor runs external commands on behalf of the provisioning
// stages: package-manager queries and installs, hardware listing, process
// probes, font cache refreshes and wallpaper application.
//
// Every call goes through the Runner interface so stages can be tested with
// a scripted fake. CommandExecutor is the real implementation; AsUser
// returns a copy that runs children with the invoking user's credentials,
// which is how the materialization stage stays de-elevated while dotrig
// itself runs as root.
//
// No timeout is applied: a hung package manager hangs the run. The context
// only exists so an interrupt cancels the running child.
package executor
