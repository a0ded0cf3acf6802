package llm

import (
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/goccy/go-json"
)

// EnhanceContent 按修改要求润色正文，返回润色后的全文
func EnhanceContent(ctx context.Context, body string, instructions string) (string, error) {
	if llmClient == nil {
		return "", errors.New("LLM未初始化")
	}

	userPrompt := "修改要求：" + instructions + "\n\n正文：\n" + body

	resp, err := fetchModel(ctx, enhancePrompt, userPrompt, 0.7)
	if err != nil {
		log.Error("内容润色-AI大模型请求失败", "err", err)
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", errors.New("内容润色-AI大模型返回数据为空")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// ImageCaption 图片理解结果
type ImageCaption struct {
	AltText     string   `json:"alt_text"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// DescribeImage 为媒体库图片生成描述与标签
func DescribeImage(ctx context.Context, url string) (*ImageCaption, error) {
	if llmClient == nil {
		return nil, errors.New("LLM未初始化")
	}

	resp, err := fetchModelByPicUrls(ctx, captionPrompt, []string{url}, 0.1)
	if err != nil {
		log.Error("图片理解-AI大模型请求失败", "err", err)
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("图片理解-AI大模型返回数据为空")
	}

	cleaned := strings.TrimSpace(resp.Choices[0].Content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	caption := &ImageCaption{}
	if err = json.Unmarshal([]byte(cleaned), caption); err != nil {
		log.Error("图片理解-AI大模型返回数据解析失败", "err", err)
		return nil, err
	}

	if len(caption.Tags) > 5 {
		caption.Tags = caption.Tags[:5]
	}
	return caption, nil
}
