package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	runVersion(cmd, nil)

	output := buf.String()
	assert.Contains(t, output, "corpusquery version")
	assert.Contains(t, output, Version)
	assert.Contains(t, output, "Go version:")
}
