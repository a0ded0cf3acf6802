package llm

import (
	"Inkstone/internal/api/config"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

// InitLLM 初始化大模型客户端。未配置 api_key 时跳过，AI 能力整体降级关闭。
func InitLLM() error {
	cfg := config.Cfg.LLM

	if cfg.ApiKey == "" {
		log.Info("LLM未配置，AI增强能力关闭")
		return nil
	}

	llm, err := openai.New(
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	return nil
}

// Enabled AI能力是否可用
func Enabled() bool {
	return llmClient != nil
}
