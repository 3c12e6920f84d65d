package main

import (
	"os"

	"crane/internal/engineconfig"
	"crane/internal/env"
	"crane/internal/logger"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config   string `help:"Engine preferences file." default:"config/engine.json" type:"path"`
	EnvFile  string `name:"env" help:"Dotenv file loaded before preferences." default:".env" type:"path"`
	LogFile  string `help:"Log file; empty logs to stderr only." default:"logs/crane.txt"`
	LogLevel string `help:"Minimum log level." enum:"debug,info,warn,error" default:"info"`

	Run     RunCmd     `cmd:"" default:"1" help:"Open the crane demo window."`
	Texture TextureCmd `cmd:"" help:"Write the UV debug texture to an image file."`
	Layout  LayoutCmd  `cmd:"" help:"Print the scene layout as YAML."`
}

// app is bound into every command's Run method.
type app struct {
	log   *logger.Logger
	prefs engineconfig.Prefs
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("crane"),
		kong.Description("A rotating crane built from primitive meshes wearing a UV debug texture."),
		kong.UsageOnError(),
	)

	log, err := logger.New(cli.LogFile, logger.ParseLevel(cli.LogLevel))
	if err != nil {
		log.Warn("log file unavailable", "path", cli.LogFile, "err", err)
	}
	defer log.Close()

	if set, err := env.Load(cli.EnvFile); err != nil {
		log.Warn("could not load env file", "path", cli.EnvFile, "err", err)
	} else if len(set) > 0 {
		log.Debug("env file loaded", "path", cli.EnvFile, "keys", set)
	}

	prefs, err := engineconfig.Load(cli.Config)
	if err != nil {
		log.Warn("using default preferences", "path", cli.Config, "err", err)
	}
	if prefs, err = engineconfig.ApplyEnv(prefs); err != nil {
		log.Warn("ignoring environment override", "err", err)
	}

	if err := kctx.Run(&app{log: log, prefs: prefs}); err != nil {
		log.Error("command failed", "cmd", kctx.Command(), "err", err)
		log.Close()
		os.Exit(1)
	}
}
