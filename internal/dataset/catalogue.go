package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// LoadAttributes reads just attributes.json from dir, for callers (such
// as `dataset list`) that need identity/compatibility metadata without
// paying for the full bundle load.
func LoadAttributes(dir string) (Attributes, error) {
	b, err := os.ReadFile(filepath.Join(dir, "attributes.json"))
	if err != nil {
		return Attributes{}, rbrerr.Wrap(rbrerr.IO, err, "reading attributes.json in "+dir)
	}
	var attrs Attributes
	if err := json.Unmarshal(b, &attrs); err != nil {
		return Attributes{}, rbrerr.Wrap(rbrerr.BadAttribute, err, "parsing attributes.json in "+dir)
	}
	return attrs, nil
}

// compatibilityJSON mirrors Compatibility with *time.Time fields
// flattened to date-only strings for a human-editable catalogue file.
type compatibilityJSON struct {
	MinDate    string `json:"min_date,omitempty"`
	MaxDate    string `json:"max_date,omitempty"`
	CLIVersion string `json:"cli_version,omitempty"`
}

// LoadCompatibility reads an optional compatibility.json from dir. Its
// absence is not an error: it reports ok=false and a zero Compatibility,
// meaning "unconstrained".
func LoadCompatibility(dir string) (compat Compatibility, ok bool, err error) {
	b, readErr := os.ReadFile(filepath.Join(dir, "compatibility.json"))
	if os.IsNotExist(readErr) {
		return Compatibility{}, false, nil
	}
	if readErr != nil {
		return Compatibility{}, false, rbrerr.Wrap(rbrerr.IO, readErr, "reading compatibility.json in "+dir)
	}
	var cj compatibilityJSON
	if err := json.Unmarshal(b, &cj); err != nil {
		return Compatibility{}, false, rbrerr.Wrap(rbrerr.BadAttribute, err, "parsing compatibility.json in "+dir)
	}
	if cj.MinDate != "" {
		t, err := DateOnly(cj.MinDate)
		if err != nil {
			return Compatibility{}, false, err
		}
		compat.MinDate = &t
	}
	if cj.MaxDate != "" {
		t, err := DateOnly(cj.MaxDate)
		if err != nil {
			return Compatibility{}, false, err
		}
		compat.MaxDate = &t
	}
	compat.CLIVersion = cj.CLIVersion
	return compat, true, nil
}

// Catalogue is one locally materialized dataset directory, listed by
// `dataset list` alongside its compatibility verdict against a tool
// version (spec.md §6's "print compatible datasets"; fetching a remote
// catalogue is out of scope, see SPEC_FULL.md's dropped-OCI-deps note).
type Catalogue struct {
	Dir        string
	Attributes Attributes
	Compatible bool
	Reason     string
}

// ListCatalogue scans datasetsDir for immediate subdirectories that
// carry an attributes.json, reporting each one's compatibility against
// toolVersion.
func ListCatalogue(datasetsDir, toolVersion string) ([]Catalogue, error) {
	entries, err := os.ReadDir(datasetsDir)
	if err != nil {
		return nil, rbrerr.Wrap(rbrerr.IO, err, "reading datasets directory "+datasetsDir)
	}

	var out []Catalogue
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(datasetsDir, e.Name())
		attrs, err := LoadAttributes(dir)
		if err != nil {
			continue
		}
		compat, _, err := LoadCompatibility(dir)
		if err != nil {
			return nil, err
		}
		ok, compatErr := CheckCompatible(toolVersion, attrs.Tag, compat)
		reason := ""
		if compatErr != nil {
			reason = compatErr.Error()
		}
		out = append(out, Catalogue{Dir: dir, Attributes: attrs, Compatible: ok, Reason: reason})
	}
	return out, nil
}
