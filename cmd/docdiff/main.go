package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/docdiff/docdiff/internal/comparer"
	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/extractor"
	"github.com/docdiff/docdiff/internal/logger"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", flags.ConfigFile, err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	// Cancel on SIGINT/SIGTERM; a cancelled run produces no output.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := comparer.NewComparer(gCfg, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Invalid configuration")
	}

	loader := extractor.NewFileLoader(zLogger)

	baseDoc, err := loader.Extract(ctx, flags.BaseFile)
	if err != nil {
		zLogger.Fatal().Err(err).Str("file", flags.BaseFile).Msg("Could not load base document")
	}
	compareDoc, err := loader.Extract(ctx, flags.CompareFile)
	if err != nil {
		zLogger.Fatal().Err(err).Str("file", flags.CompareFile).Msg("Could not load compare document")
	}

	result, err := engine.Compare(ctx, baseDoc, compareDoc)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Comparison failed")
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not encode comparison result")
	}

	if flags.OutputFile == "" {
		os.Stdout.Write(output)
		os.Stdout.Write([]byte("\n"))
		return
	}

	if err := os.WriteFile(flags.OutputFile, output, 0644); err != nil {
		zLogger.Fatal().Err(err).Str("file", flags.OutputFile).Msg("Could not write result")
	}
	zLogger.Info().Str("file", flags.OutputFile).Msg("Comparison result written")
}
