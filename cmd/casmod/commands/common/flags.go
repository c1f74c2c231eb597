// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"fmt"
	"time"

	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/internal/config"
	"github.com/open-cas/casmod/internal/doctor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	FlagConfig = FlagDefinition[string]{
		Name:        "config",
		ShortName:   "c",
		Description: fmt.Sprintf("config file path (settings can be overridden with %s_* environment variables)", config.EnvPrefix),
		Default:     "",
	}

	FlagVersion = FlagDefinition[bool]{
		Name:        "version",
		ShortName:   "v",
		Description: "Show version",
		Default:     false,
	}

	FlagOutputFormat = FlagDefinition[string]{
		Name:        "output",
		ShortName:   "o",
		Description: "Output format (yaml|json)",
		Default:     "yaml",
	}

	FlagExported = FlagDefinition[string]{
		Name:        "exported",
		ShortName:   "e",
		Description: "Name of an exported object (e.g. cas1-1) whose block device under /dev must exist",
		Default:     "",
	}

	FlagTimeout = FlagDefinition[time.Duration]{
		Name:        "timeout",
		ShortName:   "t",
		Description: "Per-command timeout, overrides executor.timeout",
		Default:     0,
	}
)

// FlagDefinition defines a command-line flag typed by T.
type FlagDefinition[T any] struct {
	Name        string
	ShortName   string
	Description string
	Default     T
}

// valueFrom contains the common type-switch logic to extract a value
// from the provided pflag.FlagSet.
func (fp *FlagDefinition[T]) valueFrom(flags *pflag.FlagSet) (T, error) {
	var zero T
	switch any(zero).(type) {
	case string:
		v, err := flags.GetString(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case bool:
		v, err := flags.GetBool(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	case time.Duration:
		v, err := flags.GetDuration(fp.Name)
		if err != nil {
			return zero, err
		}
		return any(v).(T), nil
	default:
		return zero, fmt.Errorf("unsupported flag type: %T", zero)
	}
}

// Value extracts the flag value (from the full flag set: persistent, non-persistent or from parent) of the provided cobra command.
func (fp *FlagDefinition[T]) Value(cmd *cobra.Command, args []string) (T, error) {
	if args == nil {
		args = []string{}
	}

	err := cmd.ParseFlags(args)
	if err != nil {
		var zero T
		return zero, errorx.InternalError.Wrap(err, "failed to parse flags for command %s", cmd.Name())
	}

	return fp.valueFrom(cmd.Flags())
}

// Changed reports whether the user set the flag on the command line.
func (fp *FlagDefinition[T]) Changed(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup(fp.Name)
	return f != nil && f.Changed
}

// SetVarP sets up the persistent flag and exits on error.
func (fp *FlagDefinition[T]) SetVarP(cmd *cobra.Command, p *T, required bool) {
	if err := fp.varP(cmd, p, required); err != nil {
		doctor.CheckErr(context.Background(), err, fmt.Sprintf("failed to set flag %s", fp.Name))
	}
}

// SetVar sets up the non-persistent flag and exits on error.
func (fp *FlagDefinition[T]) SetVar(cmd *cobra.Command, p *T, required bool) {
	if err := fp.varNP(cmd, p, required); err != nil {
		doctor.CheckErr(context.Background(), err, fmt.Sprintf("failed to set flag %s", fp.Name))
	}
}

func (fp *FlagDefinition[T]) varP(cmd *cobra.Command, p *T, required bool) error {
	if cmd == nil {
		return errorx.IllegalArgument.New("command for flag %s is nil", fp.Name)
	}
	if err := fp.setFlagVar(cmd.PersistentFlags(), p); err != nil {
		return err
	}
	if required {
		return cmd.MarkPersistentFlagRequired(fp.Name)
	}
	return nil
}

func (fp *FlagDefinition[T]) varNP(cmd *cobra.Command, p *T, required bool) error {
	if cmd == nil {
		return errorx.IllegalArgument.New("command for flag %s is nil", fp.Name)
	}
	if err := fp.setFlagVar(cmd.Flags(), p); err != nil {
		return err
	}
	if required {
		return cmd.MarkFlagRequired(fp.Name)
	}
	return nil
}

// setFlagVar registers the flag on flags for both persistent and non-persistent use.
func (fp *FlagDefinition[T]) setFlagVar(flags *pflag.FlagSet, p *T) error {
	if p == nil {
		return errorx.IllegalArgument.New("pointer for flag %s is nil", fp.Name)
	}

	switch ptr := any(p).(type) {
	case *string:
		flags.StringVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(string), fp.Description)
	case *bool:
		flags.BoolVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(bool), fp.Description)
	case *time.Duration:
		flags.DurationVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(time.Duration), fp.Description)
	default:
		return errorx.IllegalArgument.New("unsupported type %T for flag %s", p, fp.Name)
	}

	return nil
}
