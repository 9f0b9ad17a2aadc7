package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Run_VersionCommandReturnsZero(t *testing.T) {
	code := run([]string{"version"})
	assert.Equal(t, 0, code)
}

func Test_Run_UnknownSubcommandReturnsNonZero(t *testing.T) {
	code := run([]string{"bogus"})
	assert.Equal(t, 1, code)
}
