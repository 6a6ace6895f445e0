package adminclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gosecsite/internal/db"
)

// Resource 封装一个列表型内容集合的 CRUD 接口。
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{client: c, path: "/api/" + path}
}

func (c *Client) Programs() Resource[db.Program] { return NewResource[db.Program](c, "programs") }

func (c *Client) Events() Resource[db.Event] { return NewResource[db.Event](c, "events") }

func (c *Client) Gallery() Resource[db.GalleryItem] { return NewResource[db.GalleryItem](c, "gallery") }

func (c *Client) Leadership() Resource[db.LeadershipMember] {
	return NewResource[db.LeadershipMember](c, "leadership")
}

func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, "", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create 提交完整的 JSON 输入。
func (r Resource[T]) Create(ctx context.Context, cred Credential, input interface{}) (*T, error) {
	var item T
	if err := r.client.doJSON(ctx, http.MethodPost, r.path, &cred, input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update 只提交需要修改的字段。
func (r Resource[T]) Update(ctx context.Context, cred Credential, id string, patch interface{}) (*T, error) {
	var item T
	if err := r.client.doJSON(ctx, http.MethodPut, r.itemPath(id), &cred, patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Resource[T]) Delete(ctx context.Context, cred Credential, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), &cred, "", nil, nil)
}

// CreateWithImage 以 multipart 提交字段与可选图片，programs 没有这个接口。
func (r Resource[T]) CreateWithImage(ctx context.Context, cred Credential, fields map[string]string, image *Image) (*T, error) {
	var item T
	if err := r.client.doMultipart(ctx, http.MethodPost, r.path+"/with-image", &cred, fields, image, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Resource[T]) UpdateWithImage(ctx context.Context, cred Credential, id string, fields map[string]string, image *Image) (*T, error) {
	var item T
	if err := r.client.doMultipart(ctx, http.MethodPut, r.itemPath(id)+"/with-image", &cred, fields, image, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}
