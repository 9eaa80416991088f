package main

import (
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/sirupsen/logrus"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/cli"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/csvout"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/orchestrator"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/validator"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logrus.NewEntry(log)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			entry.WithError(err).Warn("afkfinder: failed to initialize sentry, continuing without it")
		} else {
			defer sentry.Flush(2 * 1000 * 1000 * 1000)
		}
	}

	base, err := orchestrator.Load(os.Getenv("AFKFINDER_CONFIG"))
	if err != nil {
		entry.WithError(err).Error("afkfinder: failed to load config")
		os.Exit(2)
	}

	cfg, err := cli.Parse(os.Args[1:], base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, cli.Usage)
		os.Exit(1)
	}

	if cfg.DashboardEnabled {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))
		mgr := statsview.New()
		go mgr.Start()
		entry.Info("afkfinder: live stats dashboard at http://localhost:8080/debug/statsview")
	}

	var v validator.Validator = validator.None{}
	if cfg.ValidatorPath != "" {
		proc, err := validator.NewProcess(cfg.ValidatorPath, cfg.Seed, cfg.ValidatorVersionOrdinal)
		if err != nil {
			entry.WithError(err).Warn("afkfinder: native viability oracle unavailable, proceeding without validation")
		} else {
			defer proc.Close()
			v = proc
		}
	}

	out, err := orchestrator.Run(cfg, v, entry)
	if err != nil {
		entry.WithError(err).Error("afkfinder: pipeline failed")
		os.Exit(3)
	}

	if err := csvout.Write(cfg.OutputPath, cfg.GroupSize, out, cfg.Gzip); err != nil {
		entry.WithError(err).Error("afkfinder: failed writing CSV output")
		os.Exit(3)
	}

	entry.WithFields(logrus.Fields{
		"runID":  out.RunID,
		"groups": len(out.Spots),
		"output": cfg.OutputPath,
	}).Info("afkfinder: done")
}
