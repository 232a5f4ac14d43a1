package packages

import (
	"strings"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/joho/godotenv"
)

// OSReleasePath is the standard location of the distribution identity file
const OSReleasePath = "/etc/os-release"

// AutoManager asks Detect to pick the manager itself
const AutoManager = "auto"

// distroManagers maps os-release ID / ID_LIKE values to managers
var distroManagers = map[string]string{
	"arch":        "pacman",
	"archarm":     "pacman",
	"manjaro":     "pacman",
	"endeavouros": "pacman",
	"debian":      "apt",
	"ubuntu":      "apt",
	"linuxmint":   "apt",
	"pop":         "apt",
	"fedora":      "dnf",
	"rhel":        "dnf",
	"centos":      "dnf",
	"rocky":       "dnf",
	"almalinux":   "dnf",
}

// probeOrder is used when os-release gives no answer
var probeOrder = []string{"pacman", "apt", "dnf"}

// DetectManagerName picks a package manager name. A configured name other
// than "auto" wins; then the os-release ID followed by each ID_LIKE entry;
// then the first manager binary found on PATH.
func DetectManagerName(configured, osReleasePath string, runner executor.Runner) (string, error) {
	logger := logging.GetLogger("packages.detect")

	if configured != "" && configured != AutoManager {
		if _, ok := commandSets[configured]; !ok {
			return "", errors.Newf(errors.ErrNoPackageMgr, "unsupported package manager %q", configured)
		}
		return configured, nil
	}

	release, err := godotenv.Read(osReleasePath)
	if err != nil {
		logger.Debug().Err(err).Str("path", osReleasePath).Msg("Cannot read os-release, probing PATH")
	} else {
		ids := append([]string{release["ID"]}, strings.Fields(release["ID_LIKE"])...)
		for _, id := range ids {
			if name, ok := distroManagers[strings.ToLower(id)]; ok {
				logger.Debug().Str("id", id).Str("manager", name).Msg("Package manager chosen from os-release")
				return name, nil
			}
		}
	}

	for _, name := range probeOrder {
		if _, err := runner.LookPath(commandSets[name].binary); err == nil {
			logger.Debug().Str("manager", name).Msg("Package manager found on PATH")
			return name, nil
		}
	}
	return "", errors.New(errors.ErrNoPackageMgr, "no supported package manager found")
}
