package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "FieldKeeper Server")
}

func TestRun_MissingSecret(t *testing.T) {
	t.Setenv("FIELDKEEPER_JWT_SECRET", "")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-addr", "127.0.0.1:0"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "jwt secret")
}
