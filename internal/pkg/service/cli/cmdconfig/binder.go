// Package cmdconfig maps configuration structures to flags and binds values from flags, ENVs and a config file to them.
package cmdconfig

import (
	"context"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/typo3-migrate/mask2cb/internal/pkg/env"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
	"github.com/typo3-migrate/mask2cb/internal/pkg/validator"
)

const (
	ENVPrefix = env.Prefix
)

// SetBy describes the source of a configuration value.
type SetBy string

const (
	SetByDefault    SetBy = "default"
	SetByConfigFile SetBy = "config file"
	SetByEnv        SetBy = "env"
	SetByFlag       SetBy = "flag"
)

type Binder struct {
	envNaming  *env.NamingConvention
	envs       env.Provider
	logger     log.Logger
	validator  *validator.Validator
	fs         filesystem.Fs
	configFile string
}

func NewBinder(envs env.Provider, l log.Logger) *Binder {
	return &Binder{
		envNaming: env.NewNamingConvention(ENVPrefix),
		envs:      envs,
		logger:    l,
		validator: validator.New(),
	}
}

// WithConfigFile sets a YAML or JSON file with values, the path is relative to the working dir of the fs.
// Values from the file have lower priority than ENVs and flags.
func (b *Binder) WithConfigFile(fs filesystem.Fs, path string) *Binder {
	b.fs = fs
	b.configFile = path
	return b
}

// Bind values to the targets. Priority: flag > ENV > config file > default value of the flag.
func (b *Binder) Bind(ctx context.Context, flags *pflag.FlagSet, args []string, targets ...any) error {
	v := viper.New()
	if err := b.readConfigFile(ctx, v); err != nil {
		return err
	}

	setBy, err := b.bindToViper(v, flags)
	if err != nil {
		return err
	}

	settings := v.AllSettings()
	errs := errors.NewMultiError()
	for _, target := range targets {
		if err := decode(settings, target); err != nil {
			errs.Append(err)
			continue
		}
		if err := b.validator.Validate(ctx, target); err != nil {
			errs.Append(err)
			continue
		}
		b.logger.Debugf(ctx, "Flags %s: %s", reflect.ValueOf(target).Elem().Type().String(), Dump(target).String())
	}

	if len(setBy) > 0 {
		b.logger.Debugf(ctx, "Flags set by: %s", setBy.String())
	}

	if err := errs.ErrorOrNil(); err != nil {
		return errors.PrefixError(err, "invalid flags")
	}
	return nil
}

func (b *Binder) readConfigFile(ctx context.Context, v *viper.Viper) error {
	if b.configFile == "" {
		return nil
	}

	configType := strings.TrimPrefix(strings.ToLower(filepath.Ext(b.configFile)), ".")
	switch configType {
	case "yaml", "yml", "json":
	default:
		return errors.Errorf(`config file "%s" must have ".yaml", ".yml" or ".json" extension`, b.configFile)
	}

	file, err := b.fs.ReadFile(ctx, filesystem.NewFileDef(b.configFile).SetDescription("config file"))
	if err != nil {
		return err
	}

	v.SetConfigType(configType)
	if err := v.ReadConfig(strings.NewReader(file.Content)); err != nil {
		return errors.PrefixErrorf(err, `cannot parse config file "%s"`, b.configFile)
	}

	b.logger.Debugf(ctx, `Loaded config file "%s".`, b.configFile)
	return nil
}

func (b *Binder) bindToViper(v *viper.Viper, flags *pflag.FlagSet) (KVs, error) {
	errs := errors.NewMultiError()
	setBy := make(KVs, 0)
	flags.VisitAll(func(flag *pflag.Flag) {
		key := flagNameToKey(flag)
		if key == "" {
			return
		}

		// Changed flag has the highest priority, otherwise the flag value is used as a default.
		if err := v.BindPFlag(key, flag); err != nil {
			errs.Append(err)
			return
		}

		switch {
		case flag.Changed:
			setBy = append(setBy, KV{Key: key, Value: string(SetByFlag)})
		case b.lookupEnv(flag.Name, v, key):
			setBy = append(setBy, KV{Key: key, Value: string(SetByEnv)})
		case v.InConfig(key):
			setBy = append(setBy, KV{Key: key, Value: string(SetByConfigFile)})
		}
	})

	sort.SliceStable(setBy, func(i, j int) bool {
		return setBy[i].Key < setBy[j].Key
	})

	return setBy, errs.ErrorOrNil()
}

func (b *Binder) lookupEnv(flagName string, v *viper.Viper, key string) bool {
	value, found := b.envs.Lookup(b.envNaming.FlagToEnv(flagName))
	if found {
		v.Set(key, value)
	}
	return found
}

// flagNameToKey returns the configuration key stored in the flag annotations.
func flagNameToKey(flag *pflag.Flag) string {
	if keys, ok := flag.Annotations[configKeyTag]; ok && len(keys) == 1 {
		return keys[0]
	}
	return ""
}

func decode(settings map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          configKeyTag,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(settings)
}
