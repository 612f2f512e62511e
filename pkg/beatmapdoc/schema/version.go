// Package schema reads every historical generation of the beatmap document
// and writes the latest one.
package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/diag"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/storage"
)

var (
	// Error is the error class for malformed documents.
	Error = errs.Class("schema")
	// ErrUnknownVersion is returned when a load is requested for the unknown
	// version sentinel.
	ErrUnknownVersion = errs.Class("unknown version")
)

// Keys of the main table.
const (
	keyVersion       = "version"
	keyMusicFileName = "music_file_name"
)

// DetectVersion reads the stored version of the document behind c. A missing
// or unusable value is not an error: CurrentVersion is used and a
// VersionFallback diagnostic is recorded.
func DetectVersion(c *storage.DBClient, report *diag.Report) (model.Version, error) {
	if err := requireDocument(c); err != nil {
		return model.VersionUnknown, err
	}
	main, err := c.ReadKeyValues(storage.MainTable)
	if err != nil {
		return model.VersionUnknown, err
	}
	raw, ok := main[keyVersion]
	return versionFromStored(raw, ok, report), nil
}

func requireDocument(c *storage.DBClient) error {
	if !c.HasTable(storage.MainTable) {
		return Error.New("%s has no %s table", c.Path(), storage.MainTable)
	}
	return nil
}

func versionFromStored(raw string, present bool, report *diag.Report) model.Version {
	fallback := func(format string, args ...any) model.Version {
		args = append(args, model.CurrentVersion)
		report.Add(diag.VersionFallback, model.DifficultyInvalid, model.InvalidNoteID, format+", reading as %s", args...)
		return model.CurrentVersion
	}

	if !present {
		return fallback("document has no version")
	}
	stored, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(stored) || math.IsInf(stored, 0) {
		return fallback("malformed version %q", raw)
	}
	if stored <= 0 {
		return fallback("non-positive version %q", raw)
	}

	generation := model.ScaleStoredVersion(stored)
	v, exact := model.NearestKnownVersion(generation)
	if !exact {
		report.Add(diag.VersionFallback, model.DifficultyInvalid, model.InvalidNoteID,
			"version %q is generation %d, reading as %s", raw, generation, v)
	}
	return v
}

// formatVersion renders v the way documents store it.
func formatVersion(v model.Version) string {
	return strconv.FormatFloat(v.Decimal(), 'f', -1, 64)
}
