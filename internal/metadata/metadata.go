package metadata

import (
	"errors"
	"strings"
	"time"
)

// Artifact file names inside the metadata directory.
const (
	ModulesFile = "modules"
	VersionFile = "version"
	BuildFile   = "build"
)

// StampLayout formats the date-time part of a build stamp.
const StampLayout = "2006-01-02 15:04:05.000000"

var (
	// ErrDirectory indicates the metadata directory could not be ensured.
	ErrDirectory = errors.New("metadata directory unavailable")

	// ErrArtifactWrite indicates an artifact file could not be written.
	ErrArtifactWrite = errors.New("writing metadata artifact")
)

// Metadata holds the three values persisted for the compiled program.
type Metadata struct {
	Modules []string
	Version string
	Build   string
}

// ModuleLine joins the module names the way the modules artifact stores them.
// Names containing commas are not escaped.
func (m Metadata) ModuleLine() string {
	return strings.Join(m.Modules, ",")
}

type artifact struct {
	name    string
	content string
}

func (m Metadata) artifacts() []artifact {
	return []artifact{
		{name: ModulesFile, content: m.ModuleLine()},
		{name: VersionFile, content: m.Version},
		{name: BuildFile, content: m.Build},
	}
}

// FormatStamp renders t as "<date-time> <zone abbreviation>". The zone is the
// one in effect at t, so a summer stamp carries the daylight-saving name.
func FormatStamp(t time.Time) string {
	zone, _ := t.Zone()
	return t.Format(StampLayout) + " " + zone
}

// SplitModules parses the content of the modules artifact.
func SplitModules(line string) []string {
	if line == "" {
		return nil
	}
	return strings.Split(line, ",")
}
