package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	ngerrors "github.com/matzehuels/netgraph/pkg/errors"
)

func TestRunUnknownCommand(t *testing.T) {
	var stderr bytes.Buffer
	if code := run(context.Background(), []string{"frobnicate"}, &stderr); code != exitFailure {
		t.Errorf("exit code = %d, want %d", code, exitFailure)
	}
	if !strings.Contains(stderr.String(), "unknown command") {
		t.Errorf("stderr = %q, want unknown command message", stderr.String())
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", fmt.Errorf("disk full"), "disk full"},
		{"model", ngerrors.New(ngerrors.ErrCodeNodeNotFound, "no node named %q", "A"), `no node named "A"`},
		{"wrapped cause hidden", ngerrors.Wrap(ngerrors.ErrCodeDuplicateName, fmt.Errorf("index clash"), "name \"A\" is taken"), `name "A" is taken`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(tt.err); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
