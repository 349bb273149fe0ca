// SPDX-License-Identifier: Unlicense OR MIT

package installer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MemHive is an in memory Hive, mainly for tests.
type MemHive struct {
	machine map[string]map[string]string
	user    map[string]map[string]string
}

// NewMemHive returns an empty hive.
func NewMemHive() *MemHive {
	return &MemHive{
		machine: make(map[string]map[string]string),
		user:    make(map[string]map[string]string),
	}
}

// Set stores a value, creating the key as needed.
func (h *MemHive) Set(system bool, key, name, value string) {
	scope := h.scope(system)
	vals, ok := scope[key]
	if !ok {
		vals = make(map[string]string)
		scope[key] = vals
	}
	vals[name] = value
}

// Delete removes a value. Deleting a missing value is a no-op.
func (h *MemHive) Delete(system bool, key, name string) {
	if vals, ok := h.scope(system)[key]; ok {
		delete(vals, name)
	}
}

// Value implements Hive.
func (h *MemHive) Value(system bool, key, name string) (string, bool) {
	vals, ok := h.scope(system)[key]
	if !ok {
		return "", false
	}
	v, ok := vals[name]
	return v, ok
}

func (h *MemHive) scope(system bool) map[string]map[string]string {
	if system {
		return h.machine
	}
	return h.user
}

// hiveDoc is the on disk layout of a FileHive: two scopes, each a
// key to name to value mapping.
type hiveDoc struct {
	Machine map[string]map[string]string `yaml:"machine"`
	User    map[string]map[string]string `yaml:"user"`
}

// FileHive is a Hive backed by a YAML file. It holds the parsed
// snapshot from the last Load.
type FileHive struct {
	path string
	doc  hiveDoc
}

// OpenFileHive loads path and returns a hive over its contents.
func OpenFileHive(path string) (*FileHive, error) {
	h := &FileHive{path: path}
	if err := h.Load(); err != nil {
		return nil, err
	}
	return h, nil
}

// Load re-reads the backing file, replacing the snapshot.
func (h *FileHive) Load() error {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return fmt.Errorf("installer: read hive: %w", err)
	}
	var doc hiveDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("installer: parse hive %s: %w", h.path, err)
	}
	h.doc = doc
	return nil
}

// Path returns the backing file path.
func (h *FileHive) Path() string {
	return h.path
}

// Value implements Hive.
func (h *FileHive) Value(system bool, key, name string) (string, bool) {
	scope := h.doc.User
	if system {
		scope = h.doc.Machine
	}
	vals, ok := scope[key]
	if !ok {
		return "", false
	}
	v, ok := vals[name]
	return v, ok
}
