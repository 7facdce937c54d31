package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformLabel(t *testing.T) {
	assert.Equal(t, "Web App", PlatformWeb.Label())
	assert.Equal(t, "Android App", PlatformAndroid.Label())
	assert.Equal(t, "SaaS Platform", PlatformSaaS.Label())

	// Unknown tags fall back to the web label.
	assert.Equal(t, "Web App", Platform("toaster").Label())
}

func TestPlatformValid(t *testing.T) {
	for _, p := range []Platform{PlatformWeb, PlatformAndroid, PlatformIOS, PlatformDesktop, PlatformExtension, PlatformSaaS} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, Platform("").Valid())
	assert.False(t, Platform("toaster").Valid())
}
