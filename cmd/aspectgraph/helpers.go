package main

import (
	"context"
	"log/slog"

	"aspectgraph/internal/config"
	"aspectgraph/internal/graph"
	"aspectgraph/internal/logging"
	"aspectgraph/internal/service"
	"aspectgraph/internal/store"
)

// app bundles the dependencies shared by every subcommand.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	client  graph.Client
	repo    *store.Repository
	service *service.AspectService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Logging)

	client, err := buildGraphClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repo := store.New(client)
	svc, err := service.NewAspectService(repo)
	if err != nil {
		_ = client.Close(ctx)
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		repo:    repo,
		service: svc,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if a.client == nil {
		return
	}
	if err := a.client.Close(ctx); err != nil {
		a.logger.Warn("closing graph client failed", "error", err)
	}
}

func buildGraphClient(ctx context.Context, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	return client, nil
}
