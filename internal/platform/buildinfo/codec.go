// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package buildinfo

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/viper"
)

// configType is the viper format name the properties codec is registered under.
const configType = "properties"

// newViper returns a viper instance that can decode Java properties files.
// Viper only ships JSON, TOML, YAML and dotenv decoders.
func newViper() (*viper.Viper, error) {
	registry := viper.NewCodecRegistry()
	if err := registry.RegisterCodec(configType, propertiesCodec{}); err != nil {
		return nil, fmt.Errorf("buildinfo: register properties codec: %w", err)
	}
	return viper.NewWithOptions(viper.WithCodecRegistry(registry)), nil
}

// propertiesCodec maps dotted property keys onto viper's nested key space,
// so "build.developer.name" is read back with the same key.
type propertiesCodec struct{}

func (propertiesCodec) Decode(b []byte, v map[string]any) error {
	props, err := properties.Load(b, properties.UTF8)
	if err != nil {
		return err
	}

	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		insertNested(v, strings.Split(key, "."), value)
	}
	return nil
}

func (propertiesCodec) Encode(v map[string]any) ([]byte, error) {
	flat := map[string]string{}
	flatten("", v, flat)

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	props := properties.NewProperties()
	for _, key := range keys {
		if _, _, err := props.Set(key, flat[key]); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := props.Write(&buf, properties.UTF8); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// insertNested stores value under path. A scalar sitting where a section is
// needed is replaced by the section.
func insertNested(root map[string]any, path []string, value string) {
	node := root
	for _, segment := range path[:len(path)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[segment] = child
		}
		node = child
	}
	node[path[len(path)-1]] = value
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		if child, ok := value.(map[string]any); ok {
			flatten(full, child, out)
			continue
		}
		out[full] = fmt.Sprint(value)
	}
}
