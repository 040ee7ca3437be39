// Package container provides dependency injection for finassist.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"fjacquet/finassist/internal/assistant"
	"fjacquet/finassist/internal/categorizer"
	"fjacquet/finassist/internal/config"
	"fjacquet/finassist/internal/llm"
	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/metrics"
	"fjacquet/finassist/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; fields are reached through getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	registry  *prometheus.Registry
	recorder  *metrics.Recorder
	llmClient *llm.Client
	engine    *categorizer.Engine
	assistant *assistant.Assistant
}

// NewContainer creates and wires all application dependencies with a logger
// built from cfg.Log.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	rules, err := store.NewRuleStore(cfg.Categorization.RulesFile).LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load categorization rules: %w", err)
	}

	client := llm.NewClient(llm.Options{
		APIKey:   cfg.AI.APIKey,
		BaseURL:  cfg.AI.BaseURL,
		Model:    cfg.AI.Model,
		SiteURL:  cfg.AI.SiteURL,
		SiteName: cfg.AI.SiteName,
		Timeout:  cfg.Timeout(),
	}, logger, recorder)

	engine := categorizer.NewEngine(categorizer.Options{
		Completer: client,
		Model:     cfg.AI.Model,
		Rules:     rules,
		Workers:   cfg.Bulk.Workers,
		Logger:    logger,
		Recorder:  recorder,
	})

	asst := assistant.New(assistant.Options{
		Completer: client,
		Model:     cfg.AI.Model,
		Logger:    logger,
		Recorder:  recorder,
	})

	logger.Debug("Container initialized",
		logging.Field{Key: logging.FieldModel, Value: cfg.AI.Model},
		logging.Field{Key: "ai_configured", Value: cfg.AI.APIKey != ""},
		logging.Field{Key: "custom_rules", Value: len(rules) > 0},
		logging.Field{Key: logging.FieldWorkers, Value: cfg.Bulk.Workers})

	return &Container{
		logger:    logger,
		config:    cfg,
		registry:  registry,
		recorder:  recorder,
		llmClient: client,
		engine:    engine,
		assistant: asst,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRegistry returns the prometheus registry the recorder reports to.
func (c *Container) GetRegistry() *prometheus.Registry {
	return c.registry
}

// GetRecorder returns the metrics recorder.
func (c *Container) GetRecorder() *metrics.Recorder {
	return c.recorder
}

// GetLLMClient returns the external model adapter.
func (c *Container) GetLLMClient() *llm.Client {
	return c.llmClient
}

// GetEngine returns the categorization engine.
func (c *Container) GetEngine() *categorizer.Engine {
	return c.engine
}

// GetAssistant returns the query orchestrator.
func (c *Container) GetAssistant() *assistant.Assistant {
	return c.assistant
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
