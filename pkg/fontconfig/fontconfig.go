// Package fontconfig keeps the user's fonts.conf pointing at the directory
// dotrig installs fonts into.
package fontconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/beevik/etree"
)

const doctype = `DOCTYPE fontconfig SYSTEM "urn:fontconfig:fonts.dtd"`

// EnsureDir makes sure the fontconfig file at path lists dir in a <dir>
// element, creating the file when missing. It reports whether the file
// was changed.
func EnsureDir(fs types.FS, path, dir string, dryRun bool) (bool, error) {
	logger := logging.GetLogger("fontconfig").With().Str("path", path).Logger()

	doc := etree.NewDocument()
	content, err := fs.ReadFile(path)
	switch {
	case err == nil:
		if err := doc.ReadFromBytes(content); err != nil {
			return false, errors.Wrapf(err, errors.ErrXMLEdit, "failed to parse %s", path)
		}
	case os.IsNotExist(err):
		doc.CreateProcInst("xml", `version="1.0"`)
		doc.CreateDirective(doctype)
	default:
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	root := doc.SelectElement("fontconfig")
	if root == nil {
		if doc.Root() != nil {
			return false, errors.Newf(errors.ErrXMLEdit, "%s has root <%s>, expected <fontconfig>", path, doc.Root().Tag)
		}
		root = doc.CreateElement("fontconfig")
	}

	if HasDir(root, dir) {
		logger.Debug().Str("dir", dir).Msg("Font directory already configured")
		return false, nil
	}
	if dryRun {
		logger.Info().Str("dir", dir).Msg("Would add font directory")
		return true, nil
	}

	root.CreateElement("dir").SetText(dir)
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrXMLEdit, "failed to render %s", path)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := fs.WriteFile(path, out, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	logger.Info().Str("dir", dir).Msg("Font directory added to fontconfig")
	return true, nil
}

// HasDir reports whether root already has a <dir> naming dir. A leading ~
// is compared literally, as fontconfig itself expands it.
func HasDir(root *etree.Element, dir string) bool {
	want := filepath.Clean(dir)
	for _, el := range root.SelectElements("dir") {
		if filepath.Clean(strings.TrimSpace(el.Text())) == want {
			return true
		}
	}
	return false
}
