package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sarchlab/busbench/config"
)

// configFromCommand merges, from lowest to highest priority, the defaults,
// the environment (including .env files), the flags, and the arguments.
func configFromCommand(cmd *cobra.Command, args []string) (config.Config, error) {
	f := cmd.Flags()

	envFile, _ := f.GetString("env-file")

	var err error
	if envFile != "" {
		err = config.LoadEnvFiles(envFile)
	} else {
		err = config.LoadEnvFiles()
	}

	if err != nil {
		return config.Config{}, err
	}

	c, err := config.ApplyEnv(config.Default())
	if err != nil {
		return c, err
	}

	if f.Changed("variant") {
		name, _ := f.GetString("variant")

		c.Variant, err = config.VariantByName(name)
		if err != nil {
			return c, err
		}
	}

	if f.Changed("max-cycles") {
		c.MaxCycles, _ = f.GetUint64("max-cycles")
	}

	if f.Changed("reset-hold") {
		c.ResetHold, _ = f.GetUint64("reset-hold")
	}

	if f.Changed("dut") {
		c.DUTModel, _ = f.GetString("dut")
	}

	if f.Changed("trace") {
		c.TracePath, _ = f.GetString("trace")
	}

	if f.Changed("monitor-port") {
		c.MonitorPort, _ = f.GetInt("monitor-port")
	}

	c.Monitor, _ = f.GetBool("monitor")
	c.OpenBrowser, _ = f.GetBool("open-browser")

	c.ImagePath = args[0]

	profile := "default"
	if len(args) > 1 {
		profile = args[1]
	}
	c.Profile = config.ProfileByName(profile)

	if len(args) > 2 {
		c.Seed, err = config.ParseSeed(args[2])
		if err != nil {
			return c, err
		}
		c.SeedGiven = true
	} else {
		c.Seed = config.TimeSeed()
	}

	return c, errors.WithStack(c.Validate())
}
