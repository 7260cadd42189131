package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"

	"github.com/umputun/newsdigest/pkg/config"
	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/enrich"
	"github.com/umputun/newsdigest/pkg/extract"
	"github.com/umputun/newsdigest/pkg/feed"
	"github.com/umputun/newsdigest/pkg/notify"
	"github.com/umputun/newsdigest/pkg/queue"
	"github.com/umputun/newsdigest/pkg/repository"
	"github.com/umputun/newsdigest/pkg/scheduler"
	"github.com/umputun/newsdigest/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)
	lgr.Printf("[INFO] starting newsdigest version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// run wires storage, queues and pipeline stages, then serves the operator API until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Notification.WhatsApp.Token != "" {
		SetupLog(opts.Debug, cfg.Notification.WhatsApp.Token)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	defer func() {
		if err := client.Close(); err != nil {
			lgr.Printf("[WARN] failed to close redis client: %v", err)
		}
	}()

	broker := queue.NewBroker(client, cfg.Redis.Prefix)
	if err := broker.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to queue backend: %w", err)
	}
	queues := scheduler.Queues{
		Feeds:       broker.Register(domain.QueueFeedScraping, queueOptions(cfg.Queues.FeedScraping, cfg.Queues)),
		Articles:    broker.Register(domain.QueueArticleScraping, queueOptions(cfg.Queues.ArticleScraping, cfg.Queues)),
		Generation:  broker.Register(domain.QueueDigestGeneration, queueOptions(cfg.Queues.DigestGeneration, cfg.Queues)),
		Delivery:    broker.Register(domain.QueueDigestDelivery, queueOptions(cfg.Queues.DigestDelivery, cfg.Queues)),
		Maintenance: broker.Register(domain.QueueMaintenance, queueOptions(cfg.Queues.Maintenance, cfg.Queues)),
	}

	fetcher := extract.NewFetcher(cfg.Extraction.Timeout, cfg.Extraction.UserAgent).
		WithHostRate(cfg.Extraction.HostRate, cfg.Extraction.HostBurst)
	extractor := extract.NewDefaultDispatcher(fetcher)
	lgr.Printf("[INFO] article extractors: %s", strings.Join(extractor.Providers(), ", "))

	sched := scheduler.New(scheduler.Params{
		Feeds:           repos.Feed,
		Articles:        repos.Article,
		Digests:         repos.Digest,
		Users:           repos.User,
		Parser:          feed.NewParser(cfg.Feeds.Timeout, cfg.Feeds.UserAgent),
		Extractor:       extractor,
		Enricher:        enrich.NewClient(cfg.Enrichment.BaseURL, cfg.Enrichment.Timeout),
		Notifier:        makeNotifier(cfg),
		Queues:          queues,
		Runner:          broker,
		Location:        cfg.Location(),
		GenerationTimes: cfg.Digest.GenerationTimes,
		DefaultCadence:  cfg.Feeds.DefaultCadence,
	})
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := server.New(cfg, server.NewRepositoryAdapter(repos), sched, broker, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// queueOptions maps queue config to queue options, poll interval and retention are shared
func queueOptions(q config.QueueConfig, all config.QueuesConfig) queue.Options {
	return queue.Options{
		Concurrency:  q.Concurrency,
		Attempts:     q.Attempts,
		Backoff:      q.Backoff,
		Timeout:      q.Timeout,
		PollInterval: all.PollInterval,
		Retention:    all.FailedRetention,
	}
}

// makeNotifier registers configured channels, users of unconfigured ones fail delivery permanently
func makeNotifier(cfg *config.Config) *notify.Sender {
	sender := notify.NewSender(cfg.Notification.Attempts, 0)
	wa := cfg.Notification.WhatsApp
	if wa.PhoneNumberID == "" || wa.Token == "" {
		lgr.Printf("[WARN] whatsapp channel is not configured")
		return sender
	}
	return sender.Register(domain.ChannelWhatsApp, notify.NewWhatsApp(notify.WhatsAppParams{
		BaseURL:       wa.BaseURL,
		PhoneNumberID: wa.PhoneNumberID,
		Token:         wa.Token,
		Template:      wa.Template,
		Language:      wa.Language,
		Timeout:       wa.Timeout,
	}))
}

// SetupLog configures logger with colors, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
