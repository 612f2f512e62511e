// Package cli implements the beatmapdoc command line tool.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc"
	"github.com/himanishpuri/beatmapdoc/pkg/logger"
)

const envPrefix = "BEATMAPDOC"

// Flag names; each can also be set through BEATMAPDOC_<NAME>.
const (
	flagGridPerSignature = "grid-per-signature"
	flagSignature        = "signature"
	flagLogLevel         = "log-level"
	flagLogJSON          = "log-json"
)

type app struct {
	vip    *viper.Viper
	engine *beatmapdoc.Engine
	zap    *logger.Zap
}

// NewRootCommand builds the command tree. Every call returns an independent
// tree with its own configuration.
func NewRootCommand() *cobra.Command {
	a := &app{vip: viper.New()}

	root := &cobra.Command{
		Use:   "beatmapdoc",
		Short: "Inspect and convert beatmap project documents",
		Long: `beatmapdoc reads beatmap project documents of every schema generation
and writes them back in the latest one.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.Int(flagGridPerSignature, 24, "Default grid lines per beat documents are moved onto")
	flags.Int(flagSignature, 4, "Default beats per bar")
	flags.String(flagLogLevel, "info", "Log level: debug, info, warn or error")
	flags.Bool(flagLogJSON, false, "Log JSON lines through zap instead of text")

	a.vip.SetEnvPrefix(envPrefix)
	a.vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.vip.AutomaticEnv()
	cobra.CheckErr(a.vip.BindPFlags(flags))

	root.AddCommand(
		newInfoCommand(a),
		newDumpCommand(a),
		newUpgradeCommand(a),
		newBackupCommand(a),
	)
	return root
}

// Execute runs the tool with os.Args.
func Execute() {
	cobra.CheckErr(NewRootCommand().Execute())
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	level, err := logger.ParseLevel(a.vip.GetString(flagLogLevel))
	if err != nil {
		return err
	}

	var log beatmapdoc.Logger
	if a.vip.GetBool(flagLogJSON) {
		if a.zap, err = logger.NewZap(level); err != nil {
			return err
		}
		log = a.zap
	} else {
		cfg := logger.DefaultConfig()
		cfg.Level = level
		cfg.Output = cmd.ErrOrStderr()
		log = logger.New(cfg)
	}

	a.engine, err = beatmapdoc.NewEngine(
		beatmapdoc.WithDefaultGrid(a.vip.GetInt(flagGridPerSignature), a.vip.GetInt(flagSignature)),
		beatmapdoc.WithLogger(log),
	)
	return err
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.zap != nil {
		// stderr cannot be synced on some platforms
		_ = a.zap.Sync()
	}
	return nil
}
