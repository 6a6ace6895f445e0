package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrObjectNotFound 表示存储键不存在。
var ErrObjectNotFound = errors.New("storage object not found")

// Storage 定义图片二进制内容的存取接口
type Storage interface {
	// Save 将内容写入 key，返回前保证已落盘
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Open 读取 key 对应的内容
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete 删除 key，不存在时不报错
	Delete(ctx context.Context, key string) error
	// Exists 判断 key 是否存在
	Exists(ctx context.Context, key string) (bool, error)
	// URL 返回 key 的引用路径（本地上传前缀 + key）
	URL(key string) string
}

// ResolveReference 把图片引用转换为可访问的地址。
// 以本地上传前缀开头的引用会拼上后端基础地址，其余视为外部绝对地址原样返回。
func ResolveReference(baseURL, localPrefix, ref string) string {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return ""
	}
	prefix := "/" + strings.Trim(localPrefix, "/")
	if !IsLocalReference(prefix, trimmed) {
		return trimmed
	}
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + trimmed
}

// IsLocalReference 判断引用是否指向本地上传的文件。
func IsLocalReference(localPrefix, ref string) bool {
	prefix := "/" + strings.Trim(localPrefix, "/")
	return ref == prefix || strings.HasPrefix(ref, prefix+"/")
}
