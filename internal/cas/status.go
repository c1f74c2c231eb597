// SPDX-License-Identifier: Apache-2.0

package cas

import (
	"encoding/json"
	"strings"

	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

type ModuleStatus struct {
	Name   string `yaml:"name" json:"name"`
	Loaded bool   `yaml:"loaded" json:"loaded"`
}

// Status is a point-in-time view of the engine on the target system.
type Status struct {
	Modules                 []ModuleStatus `yaml:"modules" json:"modules"`
	ManagementDevicePresent bool           `yaml:"managementDevicePresent" json:"managementDevicePresent"`
}

// Ready reports whether every module is loaded and the management device exists.
func (s Status) Ready() bool {
	if !s.ManagementDevicePresent {
		return false
	}
	for _, m := range s.Modules {
		if !m.Loaded {
			return false
		}
	}
	return true
}

func (s Status) Format(format string) (string, error) {
	var output []byte
	var err error
	switch strings.ToLower(format) {
	case FormatJSON:
		output, err = json.Marshal(s)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "Error marshaling status to JSON")
		}
	case FormatYAML:
		output, err = yaml.Marshal(s)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "Error marshaling status to YAML")
		}
	default:
		return "", errorx.IllegalFormat.New("unsupported format: %s", format)
	}

	return string(output), nil
}
