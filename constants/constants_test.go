package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("PIANOSIGHT_OUT", "")
	t.Setenv("PIANOSIGHT_ADDR", "")
	t.Setenv("PIANOSIGHT_CONFIG", "")
	assert.Equal("./out", GetOutDir())
	assert.Equal(":8080", GetAddr())
	assert.Equal("", GetConfigPath())

	t.Setenv("PIANOSIGHT_OUT", "/tmp/scores")
	t.Setenv("PIANOSIGHT_ADDR", "127.0.0.1:9000")
	t.Setenv("PIANOSIGHT_CONFIG", "pianosight.yaml")
	assert.Equal("/tmp/scores", GetOutDir())
	assert.Equal("127.0.0.1:9000", GetAddr())
	assert.Equal("pianosight.yaml", GetConfigPath())
}
