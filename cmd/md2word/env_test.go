package main

import (
	"strings"
	"testing"
)

func TestEnvironment_WithDotenv(t *testing.T) {
	t.Parallel()

	base := newTestEnv("", map[string]string{"MD2WORD_ADDR": ":1"})
	env := base.withDotenv(map[string]string{
		"MD2WORD_ADDR":      ":2",
		"MD2WORD_BASE_PATH": "/dot/",
	})

	if got := env.Getenv("MD2WORD_ADDR"); got != ":1" {
		t.Errorf("MD2WORD_ADDR = %q, process value should win", got)
	}
	if got := env.Getenv("MD2WORD_BASE_PATH"); got != "/dot/" {
		t.Errorf("MD2WORD_BASE_PATH = %q, want .env value", got)
	}
	if !strings.Contains(strings.Join(env.Environ(), "\n"), "MD2WORD_BASE_PATH=/dot/") {
		t.Error("Environ should include .env variables")
	}
	if base.Getenv("MD2WORD_BASE_PATH") != "" {
		t.Error("original environment must not change")
	}
}

func TestEnvironment_WithDotenvEmpty(t *testing.T) {
	t.Parallel()

	base := newTestEnv("", nil)
	if got := base.withDotenv(nil); got != base.Environment {
		t.Error("empty .env should return the same environment")
	}
}

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Stdin == nil || env.Stdout == nil || env.Stderr == nil || env.Getenv == nil || env.Environ == nil {
		t.Errorf("DefaultEnv() has nil fields: %+v", env)
	}
}
