package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"isolation/config"
	"isolation/experiments"
	"isolation/experiments/metrics"
	"isolation/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

func main() {
	configPath := flag.String("config", "", "tournament config file (yaml, json or toml)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or disabled")
	serve := flag.String("serve", "", "serve an agent over HTTP on this address instead of running a tournament")
	agentID := flag.Int("agent", 0, "id of the agent to serve")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if *serve != "" {
		ac, ok := cfg.Agent(*agentID)
		if !ok {
			log.Fatal().Msgf("no agent with id %d, have %v", *agentID, lo.Map(cfg.Agents, func(a metrics.AgentConfig, _ int) int { return a.ID }))
		}
		a, err := experiments.NewAgent(cfg, ac, cfg.Seed)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build agent")
		}
		if err := agent.StartAgentServer(*serve, a, cfg.TimeLimit); err != nil {
			log.Fatal().Err(err).Msg("agent server stopped")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := experiments.Run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}
}
