package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"1234", "****"},
		{"12345678", "********"},
		{"123456789", "1234*6789"},
		{"abcdefghij", "abcd**ghij"},
		{"sk-1234567890abcdef", "sk-1***********cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := MaskSecret(tt.key)
			if got != tt.want {
				t.Errorf("MaskSecret(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestLoadConfigWithPath_CreatesEmptyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfigWithPath("baidu", path)
	if err != nil {
		t.Fatalf("LoadConfigWithPath() error = %v", err)
	}
	if cfg.AppName != "baidu" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "baidu")
	}
	if len(cfg.Contexts) != 0 {
		t.Errorf("Contexts = %v, want empty", cfg.Contexts)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestConfig_ContextLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfigWithPath("baidu", path)
	if err != nil {
		t.Fatalf("LoadConfigWithPath() error = %v", err)
	}

	if err := cfg.AddContext("prod", &Context{
		APIKey:    "ak-prod",
		SecretKey: "sk-prod",
	}); err != nil {
		t.Fatalf("AddContext() error = %v", err)
	}
	if err := cfg.UseContext("prod"); err != nil {
		t.Fatalf("UseContext() error = %v", err)
	}

	// Reload from disk and verify round-trip
	cfg2, err := LoadConfigWithPath("baidu", path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	ctx, err := cfg2.GetCurrentContext()
	if err != nil {
		t.Fatalf("GetCurrentContext() error = %v", err)
	}
	if ctx.Name != "prod" || ctx.APIKey != "ak-prod" || ctx.SecretKey != "sk-prod" {
		t.Errorf("context = %+v, want prod/ak-prod/sk-prod", ctx)
	}

	if err := cfg2.DeleteContext("prod"); err != nil {
		t.Fatalf("DeleteContext() error = %v", err)
	}
	if cfg2.CurrentContext != "" {
		t.Errorf("CurrentContext = %q, want empty after delete", cfg2.CurrentContext)
	}
}

func TestConfig_ResolveContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfigWithPath("dingtalk", path)
	if err != nil {
		t.Fatalf("LoadConfigWithPath() error = %v", err)
	}
	if err := cfg.AddContext("a", &Context{AppKey: "key-a"}); err != nil {
		t.Fatalf("AddContext() error = %v", err)
	}
	if err := cfg.AddContext("b", &Context{AppKey: "key-b"}); err != nil {
		t.Fatalf("AddContext() error = %v", err)
	}
	if err := cfg.UseContext("a"); err != nil {
		t.Fatalf("UseContext() error = %v", err)
	}

	ctx, err := cfg.ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext(\"\") error = %v", err)
	}
	if ctx.AppKey != "key-a" {
		t.Errorf("AppKey = %q, want %q", ctx.AppKey, "key-a")
	}

	ctx, err = cfg.ResolveContext("b")
	if err != nil {
		t.Fatalf("ResolveContext(b) error = %v", err)
	}
	if ctx.AppKey != "key-b" {
		t.Errorf("AppKey = %q, want %q", ctx.AppKey, "key-b")
	}

	if _, err := cfg.ResolveContext("missing"); err == nil {
		t.Error("ResolveContext(missing) error = nil, want error")
	}
}

func TestContext_Extra(t *testing.T) {
	ctx := &Context{Name: "test"}

	if got := ctx.GetExtra("key"); got != "" {
		t.Errorf("GetExtra on nil map = %q, want empty string", got)
	}

	ctx.SetExtra("dev_pid", "1737")
	if got := ctx.GetExtra("dev_pid"); got != "1737" {
		t.Errorf("GetExtra(dev_pid) = %q, want %q", got, "1737")
	}
}
