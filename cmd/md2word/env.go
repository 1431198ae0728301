package main

import (
	"io"
	"os"
)

// Environment holds injectable dependencies for testability.
// Includes I/O and process environment lookups.
type Environment struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

// withDotenv returns a copy of env whose lookups fall back to vars when the
// process environment leaves a key unset. Process values always win.
func (env *Environment) withDotenv(vars map[string]string) *Environment {
	if len(vars) == 0 {
		return env
	}
	out := *env
	base := env.Getenv
	out.Getenv = func(key string) string {
		if v := base(key); v != "" {
			return v
		}
		return vars[key]
	}
	baseEnviron := env.Environ
	out.Environ = func() []string {
		list := baseEnviron()
		for k, v := range vars {
			list = append(list, k+"="+v)
		}
		return list
	}
	return &out
}
