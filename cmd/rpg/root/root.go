package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"liferpg/internal/config"
	"liferpg/internal/logging"
	"liferpg/internal/ui"
)

const Version = "0.1.0"

var (
	configPath string
	dbOverride string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "rpg",
	Short:         "Life RPG: level up your real life",
	Long:          "Life RPG turns habits, quests, journal notes and a life assessment into character progression across nine life domains.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if dbOverride != "" {
			loaded.DBPath = dbOverride
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		cfg = loaded
		logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.liferpg/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbOverride, "db", "", "Database path (overrides config and LIFERPG_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newAssessCmd(),
		newHabitCmd(),
		newQuestCmd(),
		newBadHabitCmd(),
		newBossCmd(),
		newDungeonCmd(),
		newRewardCmd(),
		newRestCmd(),
		newSleepCmd(),
		newSyncCmd(),
		newCoachCmd(),
		newLogCmd(),
		newAchievementsCmd(),
		newBoardCmd(),
		newResetCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
