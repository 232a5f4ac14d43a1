package textedit

import (
	"os"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// WarnIncludeFailed marks a directive that could not be added
const WarnIncludeFailed = "include-failed"

// Result describes what EnsureDirective did.
type Result string

const (
	// Present means the marker was already there
	Present Result = "present"
	// InsertedAfterAnchor means the directive follows the anchor line
	InsertedAfterAnchor Result = "inserted"
	// Appended means the directive was added at the end
	Appended Result = "appended"
	// MissingFile means there was no file to edit
	MissingFile Result = "missing-file"
)

// Changed reports whether the file was modified.
func (r Result) Changed() bool {
	return r == InsertedAfterAnchor || r == Appended
}

// Apply inserts directive into doc unless marker is already present.
func Apply(doc *Document, marker, directive, anchor string) Result {
	if doc.HasMarker(marker) {
		return Present
	}
	if anchor != "" && doc.InsertAfter(anchor, directive) {
		return InsertedAfterAnchor
	}
	doc.Append(directive)
	return Appended
}

// EnsureDirective applies the guarded insertion to the file at path. A
// missing file is left alone. In dry-run mode the result is computed but
// nothing is written.
func EnsureDirective(fs types.FS, path, marker, directive, anchor string, dryRun bool) (Result, error) {
	logger := logging.GetLogger("textedit").With().Str("path", path).Logger()

	content, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Msg("Config file missing, nothing to edit")
			return MissingFile, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	doc := Parse(content)
	result := Apply(doc, marker, directive, anchor)
	if !result.Changed() {
		logger.Debug().Str("marker", marker).Msg("Directive already present")
		return result, nil
	}
	if dryRun {
		logger.Info().Str("result", string(result)).Msg("Would add directive")
		return result, nil
	}

	mode := os.FileMode(0644)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := fs.WriteFile(path, doc.Bytes(), mode); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	logger.Info().Str("directive", directive).Str("result", string(result)).Msg("Directive added")
	return result, nil
}
