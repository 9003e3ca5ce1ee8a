package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх потоков процесса
type Stdio struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// NewStdio returns IO bound to os.Stdin and os.Stdout.
func NewStdio() IO {
	return NewStdioFrom(os.Stdin, os.Stdout)
}

// NewStdioFrom returns IO reading from in and writing to out.
// Passwords are read without echo only when in is a terminal.
func NewStdioFrom(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	f, ok := s.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		// пароль из pipe читаем как обычную строку
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(int(f.Fd()))
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
