// Package paths resolves every absolute location a run needs from the
// invoking identity and the configuration.
//
// The result is a types.ResolvedPaths value that is computed once and then
// passed explicitly to each stage; nothing downstream reads HOME or the XDG
// variables on its own.
//
// # Source root
//
// The source tree is located using the following priority:
//
//   - the --source flag or source.root configuration key
//   - DOTFILES_ROOT
//   - the root of the git repository containing the working directory
//   - the working directory itself
//
// # Config home
//
// Unprivileged runs use $XDG_CONFIG_HOME (via adrg/xdg). Elevated runs use
// $XDG_CONFIG_HOME only when it lies inside the invoking user's home, so a
// root-owned environment can never redirect links outside of it; otherwise
// ~/.config of the invoking user.
package paths
