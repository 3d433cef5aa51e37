package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags_ProgramOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			want: options.Program{Input: "test.ch8", Scale: 10},
		},
		{
			name: "scale flag",
			args: []string{"prog", "-scale", "4", "test.ch8"},
			want: options.Program{Input: "test.ch8", Scale: 4},
		},
		{
			name: "headless with frame limit",
			args: []string{"prog", "-headless", "-frames", "100", "test.ch8"},
			want: options.Program{Input: "test.ch8", Scale: 10, Headless: true, Frames: 100},
		},
		{
			name: "logging flags",
			args: []string{"prog", "-debug", "-q", "test.ch8"},
			want: options.Program{Input: "test.ch8", Scale: 10, Debug: true, Quiet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, _, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_EmulatorOptions(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-tickrate", "700", "-trace", "test.ch8"}

	_, got, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, 700, got.TickRate)
	assert.True(t, got.Trace)
}

func TestParseFlags_MissingInput(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog"}

	_, _, err := ParseFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"test.ch8"}))
	assert.NoError(t, validateArgs([]string{"test.ch8", ""}))

	err := validateArgs([]string{"test.ch8", "-scale"})
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Program
		emuOpts     options.Emulator
		expectError bool
	}{
		{
			name:    "valid defaults",
			opts:    options.Program{Scale: 10},
			emuOpts: options.NewEmulator(),
		},
		{
			name:        "zero scale",
			opts:        options.Program{Scale: 0},
			emuOpts:     options.NewEmulator(),
			expectError: true,
		},
		{
			name:        "zero tick rate",
			opts:        options.Program{Scale: 10},
			emuOpts:     options.Emulator{TickRate: 0},
			expectError: true,
		},
		{
			name:        "negative frame count",
			opts:        options.Program{Scale: 10, Frames: -1},
			emuOpts:     options.NewEmulator(),
			expectError: true,
		},
		{
			name:        "frame limit without headless mode",
			opts:        options.Program{Scale: 10, Frames: 100},
			emuOpts:     options.NewEmulator(),
			expectError: true,
		},
		{
			name:    "frame limit in headless mode",
			opts:    options.Program{Scale: 10, Frames: 100, Headless: true},
			emuOpts: options.NewEmulator(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.opts, tt.emuOpts)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
