package main

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
)

func TestRootCmd_ValidateOnly(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	assert.NilError(t, cmd.Execute())
	assert.Assert(t, bytes.Contains(out.Bytes(), []byte("well-formed")))
}

func TestRootCmd_Assemble(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--assemble"})

	assert.NilError(t, cmd.Execute())
	assert.Assert(t, bytes.Contains(out.Bytes(), []byte("recipients")))
}

func TestRootCmd_BadPurpose(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--purpose", "not-a-purpose"})

	assert.Assert(t, cmd.Execute() != nil)
}
