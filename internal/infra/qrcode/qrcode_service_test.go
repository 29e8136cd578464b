package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteQR_ProducesPNG(t *testing.T) {
	svc := NewQRCodeService(128, "M")

	png, err := svc.GenerateInviteQR("https://pantry.example.com/join/abc123xy")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output should be a PNG image")
}

func TestNewQRCodeService_UnknownLevelFallsBackToMedium(t *testing.T) {
	svc := NewQRCodeService(64, "X")

	png, err := svc.GenerateInviteQR("https://pantry.example.com/join/zz")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
