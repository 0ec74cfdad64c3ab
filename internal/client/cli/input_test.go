package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	var out bytes.Buffer
	got, err := GetPassword(rdr("s3cret-pass\r\n"), &out)
	require.NoError(t, err)
	require.Equal(t, "s3cret-pass", got)
	require.Contains(t, out.String(), "Password: ")
}

func TestGetPassword_Terminal(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
	isTerminal = func(int) bool { return true }

	readPassword = func(int) ([]byte, error) { return []byte("from-tty"), nil }
	var out bytes.Buffer
	got, err := GetPassword(rdr("ignored\n"), &out)
	require.NoError(t, err)
	require.Equal(t, "from-tty", got)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(rdr(""), &out)
	require.Error(t, err)
}
