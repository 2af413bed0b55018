package workspace

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"overlayhub/internal/logging"
)

const (
	sourceFile    = "source.json"
	pluginsFile   = "plugins-list.yaml"
	backstageFile = "backstage.json"
)

// List returns the immediate subdirectories of root, hidden ones excluded,
// sorted lexicographically. A read failure is logged and yields an empty
// list: no workspaces, not a fatal error.
func List(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		logging.New("workspace").Error("read workspaces directory", "dir", root, "error", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// ReadMetadata collects the local metadata of one workspace directory.
// It never fails: each missing or malformed input degrades to absence.
func ReadMetadata(root, name string) *Metadata {
	dir := filepath.Join(root, name)
	md := &Metadata{Name: name}

	md.Source = readSource(dir)
	md.Plugins = readPluginsList(dir)
	md.BackstageVersion = resolveBackstageVersion(dir, md.Source)

	// The four fixed category directories counted for presence markers.
	md.Counts = FileCounts{
		Metadata: countFiles(filepath.Join(dir, "metadata")),
		Overlays: countFiles(filepath.Join(dir, "plugins")),
		Patches:  countFiles(filepath.Join(dir, "patches")),
		Tests:    countFiles(filepath.Join(dir, "tests")),
	}
	return md
}

func readSource(dir string) *Source {
	path := filepath.Join(dir, sourceFile)
	data, err := os.ReadFile(path)
	if err != nil {
		// Missing source pointer is a valid state, not an error.
		return nil
	}
	var src Source
	if err := json.Unmarshal(data, &src); err != nil {
		logging.New("workspace").Warn("malformed source.json", "path", path, "error", err)
		return nil
	}
	return &src
}

// readPluginsList parses plugins-list.yaml, accepting either a sequence of
// plugin paths or a mapping whose keys are the paths. Text after the first
// whitespace in an entry is CLI-style argument text and is dropped. Mapping
// keys keep their document order.
func readPluginsList(dir string) []string {
	path := filepath.Join(dir, pluginsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	plugins, err := ParsePluginsList(data)
	if err != nil {
		logging.New("workspace").Warn("malformed plugins-list.yaml", "path", path, "error", err)
		return nil
	}
	return plugins
}

// ParsePluginsList decodes the plugins list from raw YAML bytes.
func ParsePluginsList(data []byte) ([]string, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse plugins list: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	node := doc.Content[0]
	var plugins []string
	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if p := pluginPath(item.Value); p != "" {
				plugins = append(plugins, p)
			}
		}
	case yaml.MappingNode:
		// Keys are the plugin paths; values carry export arguments.
		for i := 0; i+1 < len(node.Content); i += 2 {
			if p := pluginPath(node.Content[i].Value); p != "" {
				plugins = append(plugins, p)
			}
		}
	default:
		return nil, fmt.Errorf("parse plugins list: expected sequence or mapping, got %v", node.Kind)
	}
	return plugins, nil
}

// pluginPath strips trailing CLI-style argument text from an entry.
func pluginPath(entry string) string {
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// resolveBackstageVersion prefers the dedicated backstage.json file, falling
// back to the version field carried in source.json.
func resolveBackstageVersion(dir string, src *Source) string {
	path := filepath.Join(dir, backstageFile)
	if data, err := os.ReadFile(path); err == nil {
		var bs struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(data, &bs); err != nil {
			logging.New("workspace").Warn("malformed backstage.json", "path", path, "error", err)
		} else if bs.Version != "" {
			return bs.Version
		}
		// Valid JSON without a version falls through to source.json.
	}
	if src != nil {
		return src.BackstageVersion
	}
	return ""
}

// countFiles returns the number of regular files under dir, recursively.
// A missing directory counts as zero.
func countFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}
