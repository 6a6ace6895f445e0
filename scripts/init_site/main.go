package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/gosecsite/internal/config"
	"github.com/gosecsite/internal/db"
	"github.com/gosecsite/internal/fallback"
	"github.com/gosecsite/internal/service"
)

// 初始化管理员账号，并在内容表为空时写入内置文案。
func main() {
	cfg := config.Load()

	var (
		username string
		password string
		seed     bool
	)
	flag.StringVar(&username, "username", cfg.AdminUsername, "admin username")
	flag.StringVar(&password, "password", cfg.AdminPassword, "admin password, only used when the account does not exist yet")
	flag.BoolVar(&seed, "seed", true, "seed empty content tables with the built-in copy")
	flag.Parse()

	// 初始化数据库
	gdb, err := db.Open(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
		Silent: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init db: %v\n", err)
		os.Exit(1)
	}

	if err := db.EnsureUser(gdb, username, password); err != nil {
		fmt.Fprintf(os.Stderr, "ensure admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin user %q ready\n", username)

	if !seed {
		return
	}

	content, err := fallback.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load built-in content: %v\n", err)
		os.Exit(1)
	}
	report, err := service.SeedDefaults(context.Background(), gdb, content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed content: %v\n", err)
		os.Exit(1)
	}
	if len(report) == 0 {
		fmt.Println("content tables already populated, nothing seeded")
		return
	}

	names := make([]string, 0, len(report))
	for name := range report {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("seeded %d %s\n", report[name], name)
	}
}
