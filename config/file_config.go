// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"encoding/json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func modifyFromJson(cfg mutableNodeConfig, source string) error {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	return populateConfig(cfg, data)
}

func modifyFromYaml(cfg mutableNodeConfig, source string) error {
	var data map[string]interface{}
	if err := yaml.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	return populateConfig(cfg, data)
}

func convertKeyName(key string) string {
	return strings.ToUpper(strings.Replace(key, "-", "_", -1))
}

// keys may be written as "http-address" or "HTTP_ADDRESS"; strings that parse as durations are stored as durations
func populateConfig(cfg mutableNodeConfig, data map[string]interface{}) error {
	for key, value := range data {
		name := convertKeyName(key)

		switch v := value.(type) {
		case bool:
			cfg.SetBool(name, v)
		case float64:
			if v < 0 || v != float64(uint32(v)) {
				return errors.Errorf("could not decode value for config key %s: %v is not a uint32", key, v)
			}
			cfg.SetUint32(name, uint32(v))
		case int:
			if v < 0 || int64(v) != int64(uint32(v)) {
				return errors.Errorf("could not decode value for config key %s: %d is not a uint32", key, v)
			}
			cfg.SetUint32(name, uint32(v))
		case string:
			if duration, decodeError := time.ParseDuration(v); decodeError != nil {
				cfg.SetString(name, v)
			} else {
				cfg.SetDuration(name, duration)
			}
		case nil:
			cfg.SetString(name, "")
		default:
			return errors.Errorf("could not decode value for config key %s: unsupported type %T", key, value)
		}
	}

	return nil
}

// for main reading several files into one config
type FilesPaths []string

func (i *FilesPaths) String() string {
	return strings.Join(*i, ",")
}

func (i *FilesPaths) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// files are applied in order on top of the production preset; .yaml and .yml files are read as YAML, anything else as JSON
func GetNodeConfigFromFiles(configFiles FilesPaths, httpAddress string) (NodeConfig, error) {
	cfg := ForProduction("")

	for _, configFile := range configFiles {
		contents, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open config file %s", configFile)
		}

		switch strings.ToLower(filepath.Ext(configFile)) {
		case ".yaml", ".yml":
			err = modifyFromYaml(cfg, string(contents))
		default:
			err = modifyFromJson(cfg, string(contents))
		}
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse config file %s", configFile)
		}
	}

	if httpAddress != "" {
		cfg.SetString(HTTP_ADDRESS, httpAddress)
	}

	return cfg, nil
}
