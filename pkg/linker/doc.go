// Package linker converges destinations into symbolic links to their
// sources.
//
// Converge is the single primitive. It inspects the destination and then
// either leaves it alone (already correct), links it (absent) or moves it
// aside to a backup before linking (stale link or real entry). Results are
// always Applied or Skipped: a failure is reported as Skipped with
// ReasonFailed so that one broken entry never stops the others.
//
// Backups never overwrite an earlier backup: "<dest>.backup" is used first,
// then "<dest>.backup.1", "<dest>.backup.2" and so on.
package linker
