package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// CheckCompatibility reports whether a record written with recordVersion can
// be read by code expecting currentVersion.
//
// Rules:
//   - "main" on either side skips the check
//   - major and minor versions must match
//   - patch versions may differ
//
// Examples:
//   - current 1.2.0, record 1.2.5 -> OK
//   - current 1.3.0, record 1.2.0 -> ERROR (minor differs)
//   - current 2.0.0, record 1.2.0 -> ERROR (major differs)
func CheckCompatibility(currentVersion, recordVersion string) error {
	currentVersion = strings.TrimPrefix(currentVersion, "v")
	recordVersion = strings.TrimPrefix(recordVersion, "v")

	if currentVersion == "main" || recordVersion == "main" {
		return nil
	}

	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeStoreVersion, err, "invalid current version '%s'", currentVersion)
	}

	record, err := semver.NewVersion(recordVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeStoreVersion, err, "invalid record version '%s'", recordVersion)
	}

	if current.Major() != record.Major() {
		return errors.Newf(errors.ErrCodeStoreVersion, "major version mismatch: expected %d.x.x but record is %d.x.x",
			current.Major(), record.Major())
	}

	if current.Minor() != record.Minor() {
		return errors.Newf(errors.ErrCodeStoreVersion, "minor version mismatch: expected %d.%d.x but record is %d.%d.x",
			current.Major(), current.Minor(), record.Major(), record.Minor())
	}

	return nil
}
