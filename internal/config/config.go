// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alvinbaena/pwd-strength/internal/strength"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Keys, shared with the command line flag names.
const (
	KeyPolicy      = "policy"
	KeyAttackRate  = "attack-rate"
	KeyDenylist    = "denylist"
	KeyDenylistGCS = "denylist-gcs"
	KeyMask        = "mask"
	KeyShowTime    = "show-time"
	KeyMeter       = "meter"
)

type Config struct {
	Policy      string  `mapstructure:"policy" validate:"required,oneof=standard strict"`
	AttackRate  float64 `mapstructure:"attack-rate" validate:"gte=0,lte=1e18"`
	Denylist    string  `mapstructure:"denylist"`
	DenylistGCS string  `mapstructure:"denylist-gcs"`
	Mask        bool    `mapstructure:"mask"`
	ShowTime    bool    `mapstructure:"show-time"`
	Meter       bool    `mapstructure:"meter"`
}

// New returns a viper instance holding the defaults.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPolicy, strength.StandardPolicy.Name)
	v.SetDefault(KeyAttackRate, 0)
	v.SetDefault(KeyDenylist, "common.txt")
	v.SetDefault(KeyDenylistGCS, "")
	v.SetDefault(KeyMask, true)
	v.SetDefault(KeyShowTime, true)
	v.SetDefault(KeyMeter, true)
	return v
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	}
	return fe.Error() // default error
}

// Load reads the optional config file into v and validates the result. Flags
// bound to v take precedence over the file.
func Load(v *viper.Viper, configFile string) (config Config, err error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err = v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	if err = validator.New().Struct(&config); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			var msgs []string
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: %s", util.ToKebabCase(fe.Field()), msgForTag(fe)))
			}
			return Config{}, fmt.Errorf("invalid configuration. %s", strings.Join(msgs, ". "))
		}
		return Config{}, err
	}

	return config, nil
}

// StrengthPolicy resolves the named policy, applying the attack rate override.
func (c Config) StrengthPolicy() (strength.Policy, error) {
	policy, err := strength.PolicyByName(c.Policy)
	if err != nil {
		return strength.Policy{}, err
	}
	return policy.WithAttackRate(c.AttackRate), nil
}
