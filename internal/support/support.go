// Package support classifies plugins into support tiers based on static
// membership lists. Classification is pure: the lists are loaded once and
// passed in explicitly, and every plugin path maps to exactly one tier.
package support

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Tier is the support classification of a plugin.
type Tier int

// Tiers in precedence order: a path present in several lists takes the
// highest tier.
const (
	Unknown Tier = iota
	Community
	TechPreview
	Supported
)

// String returns the display name of the tier.
func (t Tier) String() string {
	switch t {
	case Supported:
		return "Supported"
	case TechPreview:
		return "Tech Preview"
	case Community:
		return "Community"
	default:
		return "Unknown"
	}
}

// List file names inside the lists directory.
const (
	supportedFile   = "supported.txt"
	techPreviewFile = "tech-preview.txt"
	communityFile   = "community.txt"
)

// Lists holds the three static membership lists. Entries are either
// workspace-qualified ("foo/plugins/bar") or bare ("plugins/bar") paths.
type Lists struct {
	supported   map[string]bool
	techPreview map[string]bool
	community   map[string]bool
}

// NewLists builds Lists from in-memory entries, mainly for tests.
func NewLists(supported, techPreview, community []string) Lists {
	return Lists{
		supported:   toSet(supported),
		techPreview: toSet(techPreview),
		community:   toSet(community),
	}
}

// LoadLists reads the three list files from dir. A missing file yields an
// empty list, not an error; blank lines and '#' comments are ignored.
func LoadLists(dir string) (Lists, error) {
	supported, err := readList(filepath.Join(dir, supportedFile))
	if err != nil {
		return Lists{}, err
	}
	techPreview, err := readList(filepath.Join(dir, techPreviewFile))
	if err != nil {
		return Lists{}, err
	}
	community, err := readList(filepath.Join(dir, communityFile))
	if err != nil {
		return Lists{}, err
	}
	return NewLists(supported, techPreview, community), nil
}

// Classify returns the tier for a plugin path within a workspace. Both the
// workspace-qualified and the bare form are checked, so the lists may use
// either addressing convention. Precedence: Supported > TechPreview >
// Community > Unknown.
func (l Lists) Classify(workspaceName, pluginPath string) Tier {
	qualified := workspaceName + "/" + pluginPath
	switch {
	case l.supported[qualified] || l.supported[pluginPath]:
		return Supported
	case l.techPreview[qualified] || l.techPreview[pluginPath]:
		return TechPreview
	case l.community[qualified] || l.community[pluginPath]:
		return Community
	default:
		return Unknown
	}
}

func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, scanner.Err()
}

func toSet(entries []string) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e] = true
	}
	return set
}
