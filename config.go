// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mnist

import (
	"github.com/spf13/viper"
)

// Config keys.  Through NewConfig each can also be set from the
// environment as MNIST_<KEY>, e.g. MNIST_BASE_URL.
const (
	ConfigKeyKind    = "kind"
	ConfigKeyBaseURL = "base_url"
	ConfigKeyFolder  = "folder"

	configEnvPrefix = "MNIST"
)

// NewConfig returns a viper instance that reads dataset settings from
// MNIST_-prefixed environment variables.  Callers may layer a config
// file or explicit Set calls on top.
func NewConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(configEnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(ConfigKeyKind, Default.String())
	return v
}

// KindFromConfig reads the dataset kind; unknown names select Default.
func KindFromConfig(v *viper.Viper) Kind {
	return ParseKind(v.GetString(ConfigKeyKind))
}

// OptionsFromConfig turns the settings present in v into Options.
// Unset keys produce no Option, so the usual defaults apply.
func OptionsFromConfig(v *viper.Viper) []Option {
	var opts []Option
	if baseURL := v.GetString(ConfigKeyBaseURL); baseURL != "" {
		opts = append(opts, WithBaseURL(baseURL))
	}
	if folder := v.GetString(ConfigKeyFolder); folder != "" {
		opts = append(opts, WithFolder(folder))
	}
	return opts
}

// NewFromConfig is New with the kind and options taken from v.  opts
// are applied after, and so take precedence over, the config.
func NewFromConfig(v *viper.Viper, opts ...Option) (*Dataset, error) {
	return New(KindFromConfig(v), append(OptionsFromConfig(v), opts...)...)
}
