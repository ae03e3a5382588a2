package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/utils"
)

// embeddedCatalog is the default content shipped in the binary, one file per
// technology. File names sort into catalog order.
//
//go:embed catalog/*.yaml
var embeddedCatalog embed.FS

// LoadEmbedded loads the built-in catalog.
func LoadEmbedded() (*Catalog, error) {
	sub, err := fs.Sub(embeddedCatalog, "catalog")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded catalog: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads a catalog from *.yaml/*.yml files in dir.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// Load picks the user directory when set, otherwise the embedded catalog.
// A leading "~" in dir is expanded to the home directory.
func Load(dir string) (*Catalog, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return LoadEmbedded()
	}
	expanded, err := utils.ExpandPath(dir)
	if err != nil {
		return nil, err
	}
	return LoadDir(expanded)
}

// LoadFS reads every YAML file at the root of fsys in lexical order.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	sets := make([]models.TechnologyContentSet, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		set, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		sets = append(sets, set)
	}

	c, err := New(sets...)
	if err != nil {
		return nil, err
	}
	logger.Debug("content catalog loaded", "technologies", c.Len())
	return c, nil
}

// Parse decodes one technology document. Unknown keys are rejected so typos
// in authored content surface at load time.
func Parse(data []byte) (models.TechnologyContentSet, error) {
	var set models.TechnologyContentSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return models.TechnologyContentSet{}, fmt.Errorf("failed to parse content: %w", err)
	}
	return set, nil
}
