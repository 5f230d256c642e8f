// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.StringFlag{
			Name:  "cache-ttl",
			Usage: "cache TTL preset (five-minutes, one-hour, one-day, seven-days) or duration",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"cache.ttl", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache.ttl", altsrc.StringSourcer(cfg.Source)),
			),
			Validator: func(value string) error {
				return FlagValidators(value, TTLValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:        "human",
			Usage:       "humanize amounts and timestamps",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "local",
			Usage:       "render timestamps in the local timezone",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "no-cache",
			Usage:       "bypass the response cache for this invocation",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewAuthFlags constructs the client credential flags, optionally namespaced
// to a command and config file. params[1] is the config file.
func NewAuthFlags(params ...string) []cli.Flag {
	id := &cli.StringFlag{
		Name:  "client-id",
		Usage: "Xero app client id",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("XEROCTL_CLIENT_ID"),
			cli.EnvVar("XERO_CLIENT_ID"),
		),
	}

	secret := &cli.StringFlag{
		Name:  "client-secret",
		Usage: "Xero app client secret",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("XEROCTL_CLIENT_SECRET"),
			cli.EnvVar("XERO_CLIENT_SECRET"),
		),
	}

	if len(params) == 2 {
		src := yaml.YAML("auth.client_id", altsrc.StringSourcer(params[1]))
		id.Sources.Chain = append(id.Sources.Chain, src)
		src = yaml.YAML("auth.client_secret", altsrc.StringSourcer(params[1]))
		secret.Sources.Chain = append(secret.Sources.Chain, src)
	}

	return []cli.Flag{id, secret}
}

// NewTenantFlag constructs a cli.StringFlag for the "tenant" flag, optionally
// namespaced to a command and config file. params[1] is the config file. When
// unset the client resolves the tenant from /connections.
func NewTenantFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "tenant",
		Usage: "tenant (organisation) to use for all commands",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("XEROCTL_TENANT"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given binary exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
