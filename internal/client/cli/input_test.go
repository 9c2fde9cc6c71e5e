package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello  \n"))

	got, err := GetSimpleText(r, "Enter something", &out)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
	require.Contains(t, out.String(), "Enter something")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(r, "Prompt", &out)
	require.NoError(t, err)
	require.Equal(t, "partial", got)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), pw)
	require.Contains(t, out.String(), "Enter password")
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer

	yes, err := Confirm(bufio.NewReader(strings.NewReader("y\n")), "Sure?", &out)
	require.NoError(t, err)
	require.True(t, yes)

	no, err := Confirm(bufio.NewReader(strings.NewReader("nope\n")), "Sure?", &out)
	require.NoError(t, err)
	require.False(t, no)
}
