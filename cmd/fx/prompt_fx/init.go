package prompt_fx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripwise/internal/config"
	"tripwise/internal/normalizer"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	ProvideModelClient,
	ProvidePipeline,
)

// ProvideModelClient builds the client for LLM_PROVIDER. There is no fallback provider.
func ProvideModelClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (utils.ItineraryModelClient, error) {
	clientCfg := utils.ModelClientConfig{
		Provider:    cfg.LLM.Provider,
		Temperature: cfg.LLM.Temperature,
	}
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		clientCfg.APIKey = cfg.LLM.OpenAIAPIKey
		clientCfg.Model = cfg.LLM.OpenAIModel
		clientCfg.BaseURL = cfg.LLM.OpenAIBaseURL
	case config.ProviderGemini:
		clientCfg.APIKey = cfg.LLM.GeminiAPIKey
		clientCfg.Model = cfg.LLM.GeminiModel
	}

	log.Info("initializing model client",
		zap.String("provider", clientCfg.Provider),
		zap.String("model", clientCfg.Model),
	)

	client, err := utils.NewItineraryModelClient(context.Background(), clientCfg)
	if err != nil {
		return nil, err
	}
	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closer.Close() },
		})
	}
	return client, nil
}

func ProvidePipeline() *normalizer.Pipeline {
	return normalizer.New()
}
