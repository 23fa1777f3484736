package nav

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Navigate(t *testing.T) {
	var out bytes.Buffer
	p := &Printer{Out: &out}

	require.NoError(t, p.Navigate("/hrd/dashboard"))
	assert.Equal(t, "→ /hrd/dashboard\n", out.String())
}

func TestBrowser_Navigate(t *testing.T) {
	var out bytes.Buffer
	var opened string
	b := &Browser{
		BaseURL: "https://hr.example.com/",
		Out:     &out,
		open: func(url string) error {
			opened = url
			return nil
		},
	}

	require.NoError(t, b.Navigate("/login"))
	assert.Equal(t, "https://hr.example.com/login", opened)
	assert.Contains(t, out.String(), "https://hr.example.com/login")
}

func TestBrowser_NavigateOpenFailure(t *testing.T) {
	b := &Browser{
		BaseURL: "https://hr.example.com",
		Out:     &bytes.Buffer{},
		open: func(string) error {
			return errors.New("no display")
		},
	}

	err := b.Navigate("/login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please visit: https://hr.example.com/login")
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://a/b", URL("http://a", "/b"))
	assert.Equal(t, "http://a/b", URL("http://a/", "b"))
}
