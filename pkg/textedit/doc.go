// Package textedit performs guarded line insertion into configuration
// files whose grammar dotrig does not parse.
//
// Files are handled as an explicit sequence of lines. A directive is
// inserted only when no line contains its marker, which makes repeated
// runs a no-op.
package textedit
