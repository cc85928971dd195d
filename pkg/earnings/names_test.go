package earnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Xyz Corp. Common Stock", "Xyz Corp."},
		{"Acme Inc. - Class A Common Stock", "Acme"},
		{"Banco Latino S.A.", "Banco Latino"},
		{"Plain Company", "Plain Company"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanName(c.in), "input %q", c.in)
	}
}

func TestSearchURL(t *testing.T) {
	got := SearchURL("Acme Inc.")
	assert.Equal(t, "https://www.google.com/search?q=Acme", got)
}
