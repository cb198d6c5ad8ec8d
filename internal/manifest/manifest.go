// Package manifest reads the commit metadata produced for a composed
// image build and exposes its installed-package list.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/open-edge-platform/kernel-rt-check/internal/rpmquery"
)

// PkglistKey is the commitmeta.json key holding the installed packages.
const PkglistKey = "rpmostree.rpmdb.pkglist"

// Every entry is [name, epoch, version, release, arch]. Some rpm-ostree
// versions emit the epoch as a JSON number rather than a string.
var pkglistSchema = jsonschema.MustCompileString("pkglist.schema.json", `{
	"type": "array",
	"items": {
		"type": "array",
		"minItems": 5,
		"maxItems": 5,
		"prefixItems": [
			{"type": "string"},
			{"type": ["string", "number"]},
			{"type": "string"},
			{"type": "string"},
			{"type": "string"}
		]
	}
}`)

// Entry is one installed package from the manifest's package list.
type Entry struct {
	Name    string
	Epoch   string
	Version string
	Release string
	Arch    string
}

// EVR returns the entry's (Epoch, Version, Release) triple.
func (e *Entry) EVR() rpmquery.EVR {
	return rpmquery.EVR{Epoch: e.Epoch, Version: e.Version, Release: e.Release}
}

// VersionString renders the build identity as version-release.arch.epoch,
// the form used in mismatch messages.
func (e *Entry) VersionString() string {
	return fmt.Sprintf("%s-%s.%s.%s", e.Version, e.Release, e.Arch, e.Epoch)
}

// LoadPackageList reads a commitmeta.json and returns its package list.
// Any failure here is structural: an absent file, malformed JSON, a
// missing package-list key, or entries that do not fit the schema.
func LoadPackageList(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	pkglist, ok := doc[PkglistKey]
	if !ok {
		return nil, fmt.Errorf("manifest %s has no %q key", path, PkglistKey)
	}

	if err := pkglistSchema.Validate(pkglist); err != nil {
		return nil, fmt.Errorf("manifest %s package list is malformed: %w", path, err)
	}

	rows := pkglist.([]interface{})
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		fields := row.([]interface{})
		entries = append(entries, Entry{
			Name:    fields[0].(string),
			Epoch:   coerceString(fields[1]),
			Version: fields[2].(string),
			Release: fields[3].(string),
			Arch:    fields[4].(string),
		})
	}
	return entries, nil
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
