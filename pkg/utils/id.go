package utils

import "github.com/google/uuid"

// NewID 返回按时间有序的 UUIDv7，生成失败时退回 v4
func NewID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
