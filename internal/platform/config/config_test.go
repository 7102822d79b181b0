package config

import (
	"testing"
	"time"
)

func TestPrefixAndKey(t *testing.T) {
	c := New().Prefix("EASYWEALTH_").Prefix("BOUNDS_")
	if got := c.key("RATE_MIN"); got != "EASYWEALTH_BOUNDS_RATE_MIN" {
		t.Fatalf("key() = %q, want %q", got, "EASYWEALTH_BOUNDS_RATE_MIN")
	}
}

func TestMayFallbacks(t *testing.T) {
	c := New().Prefix("CFGT_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("CFGT_NAME", "  wealth ")
	if got := c.MayString("NAME", "x"); got != "wealth" {
		t.Fatalf("MayString = %q, want %q", got, "wealth")
	}

	t.Setenv("CFGT_BAD_INT", "x")
	if got := c.MayInt("BAD_INT", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d, want 3", got)
	}
	t.Setenv("CFGT_RATE", "12.5")
	if got := c.MayFloat64("RATE", 0); got != 12.5 {
		t.Fatalf("MayFloat64 = %v, want 12.5", got)
	}
	t.Setenv("CFGT_FLAG", "nope")
	if got := c.MayBool("FLAG", true); got != true {
		t.Fatalf("MayBool bad -> default true expected")
	}
	t.Setenv("CFGT_DUR", "150ms")
	if got := c.MayDuration("DUR", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration = %v, want 150ms", got)
	}
}

func TestMayPort(t *testing.T) {
	c := New().Prefix("PT_")
	if got := c.MayPort("PORT", 8080); got != ":8080" {
		t.Fatalf("MayPort default = %q", got)
	}
	t.Setenv("PT_PORT", "4000")
	if got := c.MayPort("PORT", 8080); got != ":4000" {
		t.Fatalf("MayPort = %q, want :4000", got)
	}
	t.Setenv("PT_PORT", "70000")
	if got := c.MayPort("PORT", 8080); got != ":8080" {
		t.Fatalf("MayPort out of range = %q, want :8080", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EASYWEALTH_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("EASYWEALTH_SCHEME_REGISTRY_URL", "http://registry.local/")

	app := Load()
	if app.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", app.Addr)
	}
	if !app.UseMockLLM {
		t.Fatalf("expected mock LLM without an API key")
	}
	if app.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("expected gemini-2.5-flash, got %s", app.GeminiModel)
	}
	if app.SchemeRegistryURL != "http://registry.local" {
		t.Fatalf("expected trailing slash trimmed, got %s", app.SchemeRegistryURL)
	}
	if app.Bounds.ContributionMin != 500 || app.Bounds.YearsMax != 40 || app.Bounds.WithdrawalMax != 6 {
		t.Fatalf("unexpected bounds %+v", app.Bounds)
	}
}
