// Package bank loads expectation suites, evaluation results and
// data profiles from files.
package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"digital.vasic.docrender/pkg/expectation"
)

// Bank holds named expectation suites loaded from files.
type Bank struct {
	mu      sync.RWMutex
	suites  map[string]*expectation.Suite
	sources []string
}

// New creates a new empty Bank.
func New() *Bank {
	return &Bank{
		suites: make(map[string]*expectation.Suite),
	}
}

// suiteExtensions are the file extensions LoadDir reads.
var suiteExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// LoadFile loads one suite file. The suite must be named and the
// name must not already be loaded.
func (b *Bank) LoadFile(path string) error {
	suite, err := LoadSuite(path)
	if err != nil {
		return err
	}
	if suite.Name == "" {
		return fmt.Errorf("suite in %s has no expectation_suite_name", path)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.suites[suite.Name]; exists {
		return fmt.Errorf("suite %q in %s already loaded", suite.Name, path)
	}
	b.suites[suite.Name] = suite
	b.sources = append(b.sources, path)
	return nil
}

// LoadDir loads every .json, .yaml and .yml file in dir.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read suite directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !suiteExtensions[filepath.Ext(entry.Name())] {
			continue
		}
		if err := b.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a suite by name.
func (b *Bank) Get(name string) (*expectation.Suite, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.suites[name]
	return s, ok
}

// Names returns the loaded suite names in sorted order.
func (b *Bank) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.suites))
	for name := range b.suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of loaded suites.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.suites)
}

// Sources returns the list of loaded file paths.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]string, len(b.sources))
	copy(result, b.sources)
	return result
}
