package blogconf

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load 在默认值之上套用配置文件 blog 段的覆盖项。
// 需在 config.LoadConfig 之后调用，复用同一份 viper 实例。
func Load() (*Settings, error) {
	s := Default()

	sub := viper.Sub("blog")
	if sub != nil {
		if err := sub.Unmarshal(s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal blog settings: %w", err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
