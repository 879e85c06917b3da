package course

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

//go:embed content/course.json
var defaultContent []byte

// ErrUnknownModule is returned when a module id is not in the catalog.
var ErrUnknownModule = errors.New("unknown module")

// Catalog is the ordered, static set of course modules.
type Catalog struct {
	Title   string   `json:"title"`
	Modules []Module `json:"modules"`

	byID map[int]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded course content.
// It panics if the embedded content is invalid, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultContent)
		if err != nil {
			panic(fmt.Sprintf("course: embedded content: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadFile reads and validates course content from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Load(data)
}

// Load validates raw JSON content against the course schema, decodes it and
// runs the structural checks.
func Load(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	if err := validateCatalog(&c); err != nil {
		return nil, err
	}

	c.byID = make(map[int]int, len(c.Modules))
	for i, m := range c.Modules {
		c.byID[m.ID] = i
	}
	return &c, nil
}

// Module returns the module with the given id.
func (c *Catalog) Module(id int) (Module, error) {
	i, ok := c.byID[id]
	if !ok {
		return Module{}, fmt.Errorf("module %d: %w", id, ErrUnknownModule)
	}
	return c.Modules[i], nil
}

// NextID returns the id of the module after id, or 0 if id is the last one.
func (c *Catalog) NextID(id int) int {
	i, ok := c.byID[id]
	if !ok || i+1 >= len(c.Modules) {
		return 0
	}
	return c.Modules[i+1].ID
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.Modules)
}
