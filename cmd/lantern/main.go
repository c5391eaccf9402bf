package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lantern/cmd/lantern/tui"
	"lantern/internal/config"
	"lantern/internal/export"
	"lantern/internal/i18n"
	"lantern/internal/spirit"
	"lantern/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string
	apiKey     string

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lantern",
	Short: "lantern - a quiet end-of-year reflection journal",
	Long: `lantern walks you through a short set of reflection prompts, keeps
your answers on your own machine, and turns them into a story card you can
share. Optionally it asks a generative oracle which spirit animal your year
resembles.

Run without arguments to start the interactive wizard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.Data.Dir = dataDir
		}
		if apiKey != "" {
			cfg.Spirit.APIKey = apiKey
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// Keep stdout for the interface; logs go to a file in the data dir.
		if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		zcfg.OutputPaths = []string{cfg.LogPath()}
		zcfg.ErrorOutputPaths = []string{cfg.LogPath()}

		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cfg.DatabasePath(), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		m, err := tui.New(cfg, db, logger)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

var (
	exportTemplate string
	exportName     string
	exportShare    bool
)

// exportCmd renders the story card from saved reflections without the TUI.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the story card from saved reflections",
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := export.ParseTemplate(exportTemplate)
		if err != nil {
			return err
		}

		db, err := store.Open(cfg.DatabasePath(), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		reflections := db.LoadReflections()
		if len(reflections) == 0 {
			return fmt.Errorf("no saved reflections to export")
		}
		bundle := i18n.New(db.Language())

		doc := export.Document{
			Template:    tpl,
			Title:       bundle.T("app.title"),
			Subtitle:    bundle.T("app.subtitle"),
			Footer:      bundle.T("app.footer"),
			Reflections: reflections,
		}
		if exportName != "" {
			doc.Subtitle = exportName
		}

		if rec := db.LoadRecommendation(); rec != nil {
			assets := export.LoadAssets(cmd.Context(), cfg.Export.ArtDir,
				cfg.Spirit.Animals, cfg.GetImageTimeout(), logger)
			doc.Spirit = spiritCard(rec, assets, bundle.Lang() == i18n.LangTH, tpl)
		}

		exporter, err := export.NewExporter(cfg.Export.OutputDir, logger)
		if err != nil {
			return err
		}
		if exportShare {
			path, opened, err := exporter.Share(doc)
			if err != nil {
				return err
			}
			if opened {
				fmt.Printf("Opened %s\n", path)
			} else {
				fmt.Printf("Saved %s\n", path)
			}
			return nil
		}
		path, err := exporter.Download(doc)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
		return nil
	},
}

var recommendRefresh bool

// recommendCmd runs the spirit animal recommendation from the terminal.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Ask which spirit animal the saved reflections resemble",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cfg.DatabasePath(), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		rec := db.LoadRecommendation()
		if rec == nil || recommendRefresh {
			reflections := db.LoadReflections()
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			rec, err = spirit.NewRecommender(cfg.Spirit, logger).Recommend(ctx, reflections)
			if err != nil {
				return err
			}
			if err := db.SaveRecommendation(rec); err != nil {
				logger.Warn("failed to cache recommendation", zap.Error(err))
			}
		}

		emoji := ""
		if animal, ok := cfg.FindAnimal(rec.Animal); ok {
			emoji = animal.Emoji + " "
		}
		fmt.Printf("%s%s (%s)\n\n%s\n\n", emoji, rec.Title, rec.Animal, rec.Version1En)
		for _, trait := range cfg.Spirit.Traits {
			fmt.Printf("  %-12s %3d/100\n", trait, rec.Stats[trait])
		}
		return nil
	},
}

// resetCmd wipes all saved state.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all saved reflections and the cached recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cfg.DatabasePath(), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteReflections(); err != nil {
			return err
		}
		if err := db.DeleteRecommendation(); err != nil {
			return err
		}
		fmt.Println("Cleared saved reflections and the cached recommendation.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lantern version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lantern %s\n", cfg.Version)
	},
}

// spiritCard picks the localized prose version for the template.
func spiritCard(rec *spirit.Recommendation, assets *export.Assets, thai bool, tpl export.Template) *export.SpiritCard {
	card := &export.SpiritCard{
		Animal: rec.Animal,
		Title:  rec.Title,
		Traits: cfg.Spirit.Traits,
		Stats:  rec.Stats,
	}
	loud := tpl == export.TemplateBold
	switch {
	case thai && loud:
		card.Text = rec.Version2Th
	case thai:
		card.Text = rec.Version1Th
	case loud:
		card.Text = rec.Version2En
	default:
		card.Text = rec.Version1En
	}
	if img, ok := assets.Image(rec.Animal); ok {
		card.Art = img
	}
	return card
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY)")

	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "minimal", "card style: minimal, elegant, bold")
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "", "name shown on the card")
	exportCmd.Flags().BoolVar(&exportShare, "share", false, "open the card after saving")
	recommendCmd.Flags().BoolVar(&recommendRefresh, "refresh", false, "ignore the cached result and ask again")

	rootCmd.AddCommand(exportCmd, recommendCmd, resetCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
