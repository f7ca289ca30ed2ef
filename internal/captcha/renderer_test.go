package captcha

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	renderer := NewRenderer()

	code, image, err := renderer.Render()
	require.NoError(t, err)

	assert.Len(t, code, codeLength)
	for _, r := range code {
		assert.Contains(t, codeAlphabet, strings.ToUpper(string(r)))
	}

	assert.True(t, strings.HasPrefix(image, "data:image/png;base64,"))
}
