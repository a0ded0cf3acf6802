package util

import "time"

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrUint64 用于将 uint64 转换为 *uint64
func PtrUint64(i uint64) *uint64 {
	return &i
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

// PtrTime 用于将 time.Time 转换为 *time.Time
func PtrTime(t time.Time) *time.Time {
	return &t
}
