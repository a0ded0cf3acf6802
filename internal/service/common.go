package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// FriendChecker 判定两个用户是否互为好友。好友关系由宿主系统维护，
// 未注入时 FRIENDS 档位对除作者外的所有人拒绝。
type FriendChecker func(ctx context.Context, authorID, viewerID uint64) (bool, error)

// isDuplicateError 识别存储层唯一约束冲突
func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite（测试环境）
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// makeUniqueSlug 以 base 为起点逐个探测，冲突时追加 -N 后缀。
// 截断时保证后缀完整保留在 maxLen 内。
func makeUniqueSlug(ctx context.Context, base string, maxLen int, exists func(ctx context.Context, slug string) (bool, error)) (string, error) {
	if base == "" {
		base = "untitled"
	}

	taken, err := exists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for n := 1; ; n++ {
		suffix := fmt.Sprintf("-%d", n)
		candidate := base
		if maxLen > 0 && len(candidate)+len(suffix) > maxLen {
			candidate = strings.Trim(candidate[:maxLen-len(suffix)], "-")
		}
		candidate += suffix

		taken, err = exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
