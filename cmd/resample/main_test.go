package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{"sinc default", nil, []string{"Algorithm: sinc-cubic", "4410 frames -> 4800 frames"}, false},
		{"fft mono", []string{"--engine", "fft", "--channels", "1"}, []string{"Algorithm: fft-160/147", "-> 4800 frames"}, false},
		{"low quality down", []string{"--quality", "low", "--input-rate", "48000", "--output-rate", "16000"},
			[]string{"Algorithm: sinc-nearest", "Filter length: 64 taps", "-> 1470 frames"}, false},
		{"demo", []string{"--demo"}, []string{"Demo Complete", "fft-160/147"}, false},
		{"bad engine", []string{"--engine", "cubic"}, nil, true},
		{"bad quality", []string{"--quality", "max"}, nil, true},
		{"bad channels", []string{"--channels", "0"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := newRootCmd(&buf)
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}
