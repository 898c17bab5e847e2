package figma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFileKey(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "valid /file/ URL",
			url:  "https://www.figma.com/file/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "valid /design/ URL",
			url:  "https://www.figma.com/design/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "URL with node-id parameter",
			url:  "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884",
			want: "4gkABR5gEZnIvlCaXmA4KI",
		},
		{
			name: "URL without www subdomain",
			url:  "https://figma.com/file/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "URL with trailing slash",
			url:  "https://www.figma.com/file/ABC123XYZ/",
			want: "ABC123XYZ",
		},
		{
			name: "bare file key",
			url:  "ABC123XYZ",
			want: "ABC123XYZ",
		},
		{
			name:    "invalid URL - missing file key",
			url:     "https://www.figma.com/file/",
			wantErr: true,
		},
		{
			name:    "invalid URL - wrong domain",
			url:     "https://www.example.com/file/ABC123XYZ",
			wantErr: true,
		},
		{
			name:    "empty URL",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractFileKey(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNodeType(t *testing.T) {
	typ, ok := ParseNodeType("TEXT")
	assert.True(t, ok)
	assert.Equal(t, NodeText, typ)

	_, ok = ParseNodeType("text")
	assert.False(t, ok)

	_, ok = ParseNodeType("WIDGET")
	assert.False(t, ok)
}

func TestClient_GetFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Figma-Token") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"status":403,"err":"Invalid token"}`))
			return
		}
		assert.Equal(t, "/files/KEY", r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"Design System","document":{"id":"0:0","name":"Document","type":"DOCUMENT","children":[{"id":"0:1","name":"Page","type":"CANVAS","visible":false}]}}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	file, err := c.GetFile(context.Background(), "KEY")
	require.NoError(t, err)
	assert.Equal(t, "Design System", file.Name)
	require.Len(t, file.Document.Children, 1)
	assert.Equal(t, NodeCanvas, file.Document.Children[0].Type)
	assert.False(t, file.Document.Children[0].IsVisible())
	assert.True(t, file.Document.IsVisible())
	assert.EqualValues(t, 1, c.Requests())

	bad := NewClient("wrong", WithBaseURL(srv.URL))
	_, err = bad.GetFile(context.Background(), "KEY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.EqualValues(t, 1, bad.Requests())
}

func TestClient_GetImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/KEY", r.URL.Path)
		assert.Equal(t, "1:2,1:3", r.URL.Query().Get("ids"))
		assert.Equal(t, "svg", r.URL.Query().Get("format"))
		assert.Empty(t, r.URL.Query().Get("scale"))
		_, _ = w.Write([]byte(`{"images":{"1:2":"https://cdn/a.svg","1:3":""}}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	resp, err := c.GetImages(context.Background(), "KEY", []string{"1:2", "1:3"}, "svg", 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/a.svg", resp.Images["1:2"])
	assert.Empty(t, resp.Images["1:3"])
}

func TestPaintDefaults(t *testing.T) {
	var p Paint
	assert.True(t, p.IsVisible())
	assert.Equal(t, 1.0, p.Alpha())

	hidden, half := false, 0.5
	p = Paint{Visible: &hidden, Opacity: &half}
	assert.False(t, p.IsVisible())
	assert.Equal(t, 0.5, p.Alpha())
}
