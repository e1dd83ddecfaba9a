// Package dataset implements the on-disk dataset bundle: reference,
// population records, mutation index, ARG, edge-case overrides, and the
// attribute/compatibility metadata that gates which dataset a given
// tool build may use (spec.md C5 / §3, §6).
package dataset

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// Name identifies a dataset's organism/catalogue. Custom datasets built
// outside the known catalogues use NameCustom.
type Name string

const (
	NameSarsCov2 Name = "sars-cov-2"
	NameToy1     Name = "toy1"
	NameCustom   Name = "custom"
)

// TagKind classifies a dataset version tag (spec.md §6).
type TagKind int

const (
	// TagLatest selects the most recently available source files.
	TagLatest TagKind = iota
	// TagCustom marks a dataset with no date or version control.
	TagCustom
	// TagArchive pins a dataset to a specific archive timestamp.
	TagArchive
)

// Tag is a dataset's version tag: a pair of (Kind, Time), where Time is
// meaningful only for TagArchive (spec.md §6).
type Tag struct {
	Kind TagKind
	Time time.Time
}

// String renders the tag the way it would appear on the CLI or in
// attributes.json: "latest", "custom", or an RFC-3339 timestamp.
func (t Tag) String() string {
	switch t.Kind {
	case TagLatest:
		return "latest"
	case TagCustom:
		return "custom"
	default:
		return t.Time.Format(time.RFC3339)
	}
}

// ParseTag parses a tag string into a Tag. "latest" and "custom" are
// recognized literally; anything else must parse as RFC-3339, with a
// bare date (no time component) implicitly set to 23:59:59Z so that a
// same-day archive is treated as available for the whole day (spec.md
// §6). A tag dated after the current moment is rejected, mirroring
// original_source's rejection of future archive dates (spec.md §8 S6).
func ParseTag(s string) (Tag, error) {
	switch s {
	case "latest":
		return Tag{Kind: TagLatest}, nil
	case "custom":
		return Tag{Kind: TagCustom}, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		d, dateErr := time.Parse("2006-01-02", s)
		if dateErr != nil {
			return Tag{}, rbrerr.Wrapf(rbrerr.BadTag, err, "invalid dataset tag %q", s)
		}
		t = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
	}

	if t.After(time.Now()) {
		return Tag{}, rbrerr.Newf(rbrerr.BadTag, "dataset tag %q is in the future", s)
	}
	return Tag{Kind: TagArchive, Time: t}, nil
}

// RemoteFile records the origin URL and fetch time of a single dataset
// source file (spec.md §6 "origin URLs, per-file creation and download
// timestamps").
type RemoteFile struct {
	URL          string    `json:"url,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	DownloadedAt time.Time `json:"downloaded_at,omitempty"`
}

// Attributes is a dataset's identity and provenance summary, persisted
// as attributes.json (spec.md §6).
type Attributes struct {
	Name        Name                  `json:"name"`
	Tag         Tag                   `json:"tag"`
	ToolVersion string                `json:"tool_version"`
	Reference   *RemoteFile           `json:"reference,omitempty"`
	Populations *RemoteFile           `json:"populations,omitempty"`
	Misc        map[string]RemoteFile `json:"misc,omitempty"`
}

// attributesJSON mirrors Attributes with Tag flattened to its string
// form, since Tag has no natural zero-allocation JSON encoding.
type attributesJSON struct {
	Name        Name                  `json:"name"`
	Tag         string                `json:"tag"`
	ToolVersion string                `json:"tool_version"`
	Reference   *RemoteFile           `json:"reference,omitempty"`
	Populations *RemoteFile           `json:"populations,omitempty"`
	Misc        map[string]RemoteFile `json:"misc,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (a Attributes) MarshalJSON() ([]byte, error) {
	return json.Marshal(attributesJSON{
		Name:        a.Name,
		Tag:         a.Tag.String(),
		ToolVersion: a.ToolVersion,
		Reference:   a.Reference,
		Populations: a.Populations,
		Misc:        a.Misc,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	var aj attributesJSON
	if err := json.Unmarshal(data, &aj); err != nil {
		return err
	}
	tag, err := ParseTag(aj.Tag)
	if err != nil {
		return err
	}
	a.Name = aj.Name
	a.Tag = tag
	a.ToolVersion = aj.ToolVersion
	a.Reference = aj.Reference
	a.Populations = aj.Populations
	a.Misc = aj.Misc
	return nil
}

// Compatibility constrains which (tool version, tag) pairs a dataset
// accepts: an optional semver range on the tool, and an optional
// [MinDate, MaxDate] window on an archive tag (spec.md §6).
type Compatibility struct {
	MinDate     *time.Time
	MaxDate     *time.Time
	CLIVersion  string // e.g. ">=0.2.0"; empty means unconstrained.
}

// CheckCompatible reports whether toolVersion (a semver string, "v"
// prefix optional) and tag satisfy compat, using golang.org/x/mod/semver
// for the version comparison (spec.md §6, §8 S6). A compatible pair
// returns true and a nil error. An incompatible pair returns false with
// a CliTooOld or TagOutOfRange error saying why; a malformed tool
// version or constraint returns false with a BadAttribute error.
func CheckCompatible(toolVersion string, tag Tag, compat Compatibility) (bool, error) {
	if compat.CLIVersion != "" {
		ok, err := versionSatisfies(toolVersion, compat.CLIVersion)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, rbrerr.Newf(rbrerr.CliTooOld,
				"cli version %s does not satisfy dataset requirement %s", toolVersion, compat.CLIVersion)
		}
	}

	if tag.Kind == TagArchive {
		if compat.MinDate != nil && tag.Time.Before(*compat.MinDate) {
			return false, rbrerr.Newf(rbrerr.TagOutOfRange,
				"tag %s predates the dataset's minimum supported date %s",
				tag.Time.Format("2006-01-02"), compat.MinDate.Format("2006-01-02"))
		}
		if compat.MaxDate != nil && tag.Time.After(*compat.MaxDate) {
			return false, rbrerr.Newf(rbrerr.TagOutOfRange,
				"tag %s postdates the dataset's maximum supported date %s",
				tag.Time.Format("2006-01-02"), compat.MaxDate.Format("2006-01-02"))
		}
	}
	return true, nil
}

// versionSatisfies evaluates a single-operator constraint like ">=1.2.0"
// against version using semver.Compare. Supported operators: >=, <=, >,
// <, ==, or none (exact match).
func versionSatisfies(version, constraint string) (bool, error) {
	constraint = strings.TrimSpace(constraint)
	op, bound := splitConstraint(constraint)
	v, b := canonical(version), canonical(bound)
	if !semver.IsValid(v) {
		return false, rbrerr.Newf(rbrerr.BadAttribute, "invalid tool version %q", version)
	}
	if !semver.IsValid(b) {
		return false, rbrerr.Newf(rbrerr.BadAttribute, "invalid version constraint %q", constraint)
	}
	cmp := semver.Compare(v, b)
	switch op {
	case ">=":
		return cmp >= 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case "<":
		return cmp < 0, nil
	case "==", "":
		return cmp == 0, nil
	default:
		return false, rbrerr.Newf(rbrerr.BadAttribute, "unsupported constraint operator %q", op)
	}
}

func splitConstraint(c string) (op, bound string) {
	for _, candidate := range []string{">=", "<=", "==", ">", "<"} {
		if strings.HasPrefix(c, candidate) {
			return candidate, strings.TrimSpace(strings.TrimPrefix(c, candidate))
		}
	}
	return "", c
}

// canonical prefixes a bare "1.2.3" version with "v" so it parses under
// semver, which (per Go's module convention) requires the prefix.
func canonical(v string) string {
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// DateOnly is a convenience parser for Compatibility's MinDate/MaxDate,
// matching the "yyyy-mm-dd" format original_source reads for dataset
// compatibility windows.
func DateOnly(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, rbrerr.Wrapf(rbrerr.BadAttribute, err, "invalid date %q", s)
	}
	return t, nil
}
