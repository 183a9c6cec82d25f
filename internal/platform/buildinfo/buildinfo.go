// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package buildinfo loads build metadata from a Java-style properties file.

The file is produced by the build pipeline (e.g. META-INF/build-info.properties)
and is consumed only for API documentation display:

	build.name=person-api
	build.description=Person CRUD service
	build.version=1.2.0
	build.developer.name=Jane Doe
	build.developer.email=jane@example.com
	build.license.name=Apache 2.0
	build.license.url=https://www.apache.org/licenses/LICENSE-2.0

A missing file is not an error: compiled-in defaults are used instead.
A file that exists but cannot be parsed is an error.
*/
package buildinfo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"

	"github.com/taibuivan/personapi/internal/platform/constants"
)

// Property keys as they appear in the properties file.
const (
	KeyName           = "build.name"
	KeyDescription    = "build.description"
	KeyVersion        = "build.version"
	KeyDeveloperName  = "build.developer.name"
	KeyDeveloperEmail = "build.developer.email"
	KeyLicenseName    = "build.license.name"
	KeyLicenseURL     = "build.license.url"
)

// Info is the build metadata exposed through the OpenAPI document.
type Info struct {
	Name           string
	Description    string
	Version        string
	DeveloperName  string
	DeveloperEmail string
	LicenseName    string
	LicenseURL     string
}

// Default returns the metadata used when no properties file is present.
func Default() Info {
	return Info{
		Name:        constants.AppName,
		Description: "CRUD service for Person records",
		Version:     constants.AppVersion,
	}
}

// Load reads build metadata from the properties file at path.
func Load(path string) (Info, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Info{}, fmt.Errorf("buildinfo: stat %s: %w", path, err)
	}

	v, err := newViper()
	if err != nil {
		return Info{}, err
	}
	v.SetConfigFile(path)
	v.SetConfigType(configType)
	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		return Info{}, fmt.Errorf("buildinfo: read %s: %w", path, err)
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper, info Info) {
	v.SetDefault(KeyName, info.Name)
	v.SetDefault(KeyDescription, info.Description)
	v.SetDefault(KeyVersion, info.Version)
}

func fromViper(v *viper.Viper) Info {
	return Info{
		Name:           v.GetString(KeyName),
		Description:    v.GetString(KeyDescription),
		Version:        v.GetString(KeyVersion),
		DeveloperName:  v.GetString(KeyDeveloperName),
		DeveloperEmail: v.GetString(KeyDeveloperEmail),
		LicenseName:    v.GetString(KeyLicenseName),
		LicenseURL:     v.GetString(KeyLicenseURL),
	}
}
