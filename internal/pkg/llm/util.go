package llm

import (
	"Inkstone/internal/api/config"
	"context"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
)

func fetchModel(ctx context.Context, systemPrompt string, userPrompt string, temp float64) (*llms.ContentResponse, error) {
	if err := enhanceSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer enhanceSem.Release(1)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}
	log.Info("正在请求AI大模型")
	return llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.TextModel),
		llms.WithTemperature(temp),
	)
}

func fetchModelByPicUrls(ctx context.Context, systemPrompt string, picUrls []string, temp float64) (*llms.ContentResponse, error) {
	if err := captionSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer captionSem.Release(1)
	contentPart := make([]llms.ContentPart, len(picUrls))
	for i, url := range picUrls {
		contentPart[i] = llms.ImageURLPart(url)
	}

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: contentPart,
		},
	}
	log.Info("正在请求AI大模型")
	return llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.VisionModel),
		llms.WithTemperature(temp),
	)
}
