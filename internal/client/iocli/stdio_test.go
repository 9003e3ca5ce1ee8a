package iocli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnPrintfWrite(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdioFrom(strings.NewReader(""), &out)

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s\n", 1, "abc")
	n, err := stdio.Write([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, "hello world\ntest 1 abc\nraw", out.String())
}

func TestReadInput(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdioFrom(strings.NewReader("  user input \nsecond\nlast"), &out)

	first, err := stdio.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", first)

	second, err := stdio.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	// последняя строка без перевода строки
	last, err := stdio.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "last", last)

	_, err = stdio.ReadInput("Prompt: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, strings.Repeat("Prompt: ", 4), out.String())
}

// Не терминал: пароль читается как строка
func TestReadPassword_FromPipe(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdioFrom(strings.NewReader("s3cret-pass\n"), &out)

	password, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", password)
	assert.Equal(t, "Password: ", out.String())
}
