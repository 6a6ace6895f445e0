package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidation 表示调用方可修正的输入错误。
	ErrValidation = errors.New("validation failed")
	// ErrNoFieldsToUpdate 表示补丁中没有任何字段。
	ErrNoFieldsToUpdate = fmt.Errorf("%w: no fields to update", ErrValidation)
	ErrNotFound         = errors.New("not found")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")

	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized 表示请求没有携带凭证。
	ErrUnauthorized = errors.New("missing bearer credential")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// FieldErrors 汇总字段级校验失败信息，key 为 JSON 字段名。
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+" "+f[key])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap 让 errors.Is(err, ErrValidation) 成立。
func (f FieldErrors) Unwrap() error {
	return ErrValidation
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q %w", kind, id, ErrNotFound)
}
