// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lead loads the lead record a research run is about.
package lead

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lead-research/pkg/types"
)

// LoadFile reads a YAML lead record from path. Unknown fields are rejected
// so that typos do not silently produce an empty field.
func LoadFile(path string) (types.LeadInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LeadInfo{}, fmt.Errorf("reading lead file: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return types.LeadInfo{}, fmt.Errorf("parsing lead file %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes a YAML lead record and validates its required fields.
func Parse(data []byte) (types.LeadInfo, error) {
	var l types.LeadInfo
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return types.LeadInfo{}, fmt.Errorf("lead record is empty")
		}
		return types.LeadInfo{}, err
	}
	if err := l.Validate(); err != nil {
		return types.LeadInfo{}, err
	}
	return l, nil
}

// Resolve picks the lead for a run: the file at path when set, otherwise
// fromConfig when it names anyone, otherwise the built-in demo lead.
func Resolve(path string, fromConfig types.LeadInfo) (types.LeadInfo, error) {
	if path != "" {
		return LoadFile(path)
	}
	if fromConfig != (types.LeadInfo{}) {
		if err := fromConfig.Validate(); err != nil {
			return types.LeadInfo{}, fmt.Errorf("lead in config: %w", err)
		}
		return fromConfig, nil
	}
	return types.DefaultLead(), nil
}
