package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, "[empty]", Mask(""))
	assert.Equal(t, "[***]", Mask("short"))
	assert.Equal(t, "abc...xyz", Mask("abcdefghijklmnopqrstuvwxyz"))
}

func TestMaskScope(t *testing.T) {
	url := "https://torrentio.strem.fun/realdebrid=ABCDEFGHIJKLMNOP|putio=client1234@token5678/stream/movie/tt1.json"
	assert.Equal(t,
		"https://torrentio.strem.fun/realdebrid=ABC...NOP|putio=cli...678/stream/movie/tt1.json",
		MaskScope(url))

	assert.Equal(t, "https://torrentio.strem.fun/", MaskScope("https://torrentio.strem.fun/"))
	assert.Equal(t, "torbox=[***]", MaskScope("torbox=abc"))
}
