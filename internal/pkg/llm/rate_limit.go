package llm

import (
	"golang.org/x/sync/semaphore"
)

// 文本增强和图片描述分别限流，避免润色高峰把配图描述任务全部挤掉
const (
	enhanceConcurrency = int64(5)
	captionConcurrency = int64(10)
)

var (
	enhanceSem = semaphore.NewWeighted(enhanceConcurrency)
	captionSem = semaphore.NewWeighted(captionConcurrency)
)
