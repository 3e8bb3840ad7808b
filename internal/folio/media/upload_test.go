package media_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/media/mediatest"
	"github.com/stretchr/testify/require"
)

func TestReadUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		limits   media.Limits
		wantErr  bool
	}{
		{"png", "Photo.PNG", mediatest.PNG, media.ContentLimits, false},
		{"gif", "a.gif", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), media.ProfileLimits, false},
		{"bad extension", "a.exe", mediatest.PNG, media.ContentLimits, true},
		{"no extension", "a", mediatest.PNG, media.ContentLimits, true},
		{"text disguised as png", "a.png", []byte("hello, this is not an image"), media.ContentLimits, true},
		{"empty", "a.png", nil, media.ContentLimits, true},
		{"too large", "a.png", append(append([]byte{}, mediatest.PNG...), make([]byte, 64)...),
			media.Limits{MaxBytes: 32, Extensions: []string{".png"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, err := media.ReadUpload(bytes.NewReader(tt.data), tt.filename, tt.limits)
			if tt.wantErr {
				require.ErrorIs(t, err, media.ErrInvalidUpload)
				return
			}
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(up.ContentType, "image/"))
			require.Equal(t, strings.ToLower(up.Ext), up.Ext)
			require.Equal(t, tt.data, up.Data)
		})
	}
}

func TestObjectKeyIgnoresClientName(t *testing.T) {
	up := media.Upload{Filename: "../../etc/passwd.png", Ext: ".png"}

	a := media.ObjectKey("blogs", up)
	b := media.ObjectKey("blogs", up)
	require.NotEqual(t, a, b)
	require.True(t, strings.HasPrefix(a, "blogs/"))
	require.True(t, strings.HasSuffix(a, ".png"))
	require.NotContains(t, a, "passwd")
}
