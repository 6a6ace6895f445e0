package fallback

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gosecsite/internal/db"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var raw []byte

// Content 是随二进制一起发布的静态双语文案。
// 数据库为空时用于初始化，公开读取失败时用于降级展示。
type Content struct {
	Hero       db.HeroContent        `yaml:"hero"`
	About      db.AboutContent       `yaml:"about"`
	Programs   []db.Program          `yaml:"programs"`
	Events     []db.Event            `yaml:"events"`
	Gallery    []db.GalleryItem      `yaml:"gallery"`
	Leadership []db.LeadershipMember `yaml:"leadership"`
}

var (
	once    sync.Once
	cached  Content
	loadErr error
)

// Load 解析内嵌的 YAML，结果只解析一次；每次返回独立的副本，调用方可以随意修改。
func Load() (Content, error) {
	once.Do(func() {
		cached, loadErr = Parse(raw)
	})
	if loadErr != nil {
		return Content{}, loadErr
	}
	return cached.clone(), nil
}

// Parse 解析给定的 YAML 文案。
func Parse(data []byte) (Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return Content{}, fmt.Errorf("parse fallback content: %w", err)
	}
	return content, nil
}

func (c Content) clone() Content {
	out := c
	out.Programs = make([]db.Program, len(c.Programs))
	for i, program := range c.Programs {
		program.BulletsEN = append([]string(nil), program.BulletsEN...)
		program.BulletsFR = append([]string(nil), program.BulletsFR...)
		out.Programs[i] = program
	}
	out.Events = append([]db.Event(nil), c.Events...)
	out.Gallery = append([]db.GalleryItem(nil), c.Gallery...)
	out.Leadership = append([]db.LeadershipMember(nil), c.Leadership...)
	return out
}
