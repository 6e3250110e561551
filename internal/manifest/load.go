package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"shorts/internal/services"
)

// ParseJSON decodes JSON into the untyped tree Validate expects. Numbers are
// kept as json.Number so integer checks see the literal value.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return doc, nil
}

// ParseYAML decodes a YAML manifest into the same untyped tree shape.
func ParseYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Parse picks the decoder from the file extension; anything other than
// .yaml/.yml is treated as JSON.
func Parse(path string, data []byte) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// Decode parses in-memory JSON and asserts it is a valid manifest.
func Decode(data []byte) (*Manifest, error) {
	doc, err := ParseJSON(data)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "manifest", "parse", "invalid JSON", err)
	}
	return AssertValid(doc)
}

// ReadTree reads and parses a manifest file without validating it.
func ReadTree(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "manifest", "read", fmt.Sprintf("read %s", path), err)
	}
	doc, err := Parse(path, data)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "manifest", "parse", fmt.Sprintf("decode %s", path), err)
	}
	return doc, nil
}

// Load reads, parses, and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	doc, err := ReadTree(path)
	if err != nil {
		return nil, err
	}
	return AssertValid(doc)
}
