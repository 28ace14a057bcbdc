package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-syntree/internal/config"
)

// ErrUnexpectedArgs is returned when a command that takes no arguments gets some.
var ErrUnexpectedArgs = errors.New("unexpected arguments")

// runConfig prints the effective configuration as YAML after merging the
// config file, SYNTREE_* variables and flags.
func runConfig(_ context.Context, args []string, flags *configFlags, env *Environment) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %q", ErrUnexpectedArgs, args)
	}

	cfg, err := loadSettings(flags.common, flags.renderer)
	if err != nil {
		return err
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
