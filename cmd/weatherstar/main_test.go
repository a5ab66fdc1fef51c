package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ConfigExitCodes(t *testing.T) {
	t.Setenv("SETTINGS_PATH", t.TempDir()+"/settings.json")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"lat without lon", []string{"--lat", "39"}, 1},
		{"zero fps", []string{"--fps", "0"}, 1},
		{"latitude out of range", []string{"--lat", "200", "--lon", "0"}, 1},
		{"unknown flag", []string{"--bogus"}, 1},
		{"help", []string{"-h"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.args))
		})
	}
}
