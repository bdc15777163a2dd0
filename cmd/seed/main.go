package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/config"
	"github.com/listings-marketplace/internal/infrastructure/opencage"
	"github.com/listings-marketplace/internal/pkg/logger"
	"github.com/listings-marketplace/internal/pkg/metrics"
	"github.com/listings-marketplace/internal/repository/postgres"
	"github.com/listings-marketplace/internal/usecase"
)

type seedOptions struct {
	file     string
	delay    time.Duration
	logLevel string
	envFile  string
}

var opts seedOptions

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Заполняет базу объявлениями из JSON с геокодированием и категориями",
	Long: `
seed удаляет все объявления, последовательно геокодирует каждое из файла
(с паузой между запросами к провайдеру), назначает категорию и сохраняет
всю пачку одной вставкой. Объявления, которые не удалось геокодировать,
сохраняются с координатами [0, 0].
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runSeed(ctx, cmd)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON-файл с объявлениями (по умолчанию SEED_FILE)")
	rootCmd.Flags().DurationVar(&opts.delay, "delay", 0, "пауза между запросами к геокодеру (по умолчанию SEED_DELAY_MS)")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "уровень логирования (по умолчанию LOG_LEVEL)")
	rootCmd.Flags().StringVar(&opts.envFile, "env", ".env", "путь к env-файлу")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runSeed(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.LoadFile(opts.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.file != "" {
		cfg.Seed.File = opts.file
	}
	if cmd.Flags().Changed("delay") {
		cfg.Seed.Delay = opts.delay
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log, err := logger.New(cfg.Log.Level, "listings-seed")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	drafts, err := loadDrafts(cfg.Seed.File)
	if err != nil {
		return err
	}
	log.Info("Seed data loaded",
		zap.String("file", cfg.Seed.File),
		zap.Int("count", len(drafts)),
		zap.Duration("delay", cfg.Seed.Delay))

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	m := metrics.New(prometheus.NewRegistry())
	enricher := usecase.NewGeocodeEnricher(opencage.NewClient(&cfg.Geocoder, log), m, log)
	seedUC := usecase.NewSeedUseCase(postgres.NewListingRepository(db), enricher, nil, cfg.Seed.Delay, m, log)

	out := cmd.OutOrStdout()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar := progressbar.NewOptions(len(drafts),
			progressbar.OptionSetDescription("Geocoding listings"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		seedUC.OnItem(func(usecase.SeedItemResult) {
			_ = bar.Add(1)
		})
	}

	report, err := seedUC.Seed(ctx, drafts)
	if err != nil {
		return err
	}

	printReport(out, report)
	return nil
}
