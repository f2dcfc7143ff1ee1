package http

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/indigo-web/fileserve/http/mime"
	"github.com/indigo-web/fileserve/http/status"
	"github.com/indigo-web/fileserve/kv"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fields := NewResponse().Reveal()
		require.Equal(t, status.OK, fields.Code)
		require.Equal(t, mime.HTML, fields.ContentType)
		require.Empty(t, fields.Headers)
	})

	t.Run("builder", func(t *testing.T) {
		fields := NewResponse().
			Code(status.NotAcceptable).
			ContentType(mime.Plain).
			Header("X-Custom", "one", "two").
			String("short and stout").
			Reveal()
		require.Equal(t, status.NotAcceptable, fields.Code)
		require.Equal(t, mime.Plain, fields.ContentType)
		require.Equal(t, []kv.Pair{
			{Key: "X-Custom", Value: "one"},
			{Key: "X-Custom", Value: "two"},
		}, fields.Headers)
		require.Equal(t, "short and stout", string(fields.Body))
	})

	t.Run("clear", func(t *testing.T) {
		fields := NewResponse().
			Code(status.NotAcceptable).
			Header("X-Custom", "value").
			String("body").
			Clear().
			Reveal()
		require.Equal(t, status.OK, fields.Code)
		require.Empty(t, fields.Headers)
		require.Empty(t, fields.Body)
	})

	t.Run("redirect", func(t *testing.T) {
		fields := NewResponse().Redirect("/target/").Reveal()
		require.Equal(t, status.MovedPermanently, fields.Code)
		require.Contains(t, fields.Headers, kv.Pair{Key: "Location", Value: "/target/"})
	})

	t.Run("json", func(t *testing.T) {
		fields := NewResponse().JSON([]string{"a.txt", "sub/"}).Reveal()
		require.Equal(t, mime.JSON, fields.ContentType)
		require.Equal(t, `["a.txt","sub/"]`, string(fields.Body))
	})
}

func TestResponse_Error(t *testing.T) {
	t.Run("http error carries its own code", func(t *testing.T) {
		fields := NewResponse().Error(status.ErrNotFound).Reveal()
		require.Equal(t, status.NotFound, fields.Code)
		require.Equal(t, mime.Plain, fields.ContentType)
		require.Equal(t, "not found", string(fields.Body))
	})

	t.Run("arbitrary error defaults to 500", func(t *testing.T) {
		fields := NewResponse().Error(errors.New("something broke")).Reveal()
		require.Equal(t, status.InternalServerError, fields.Code)
		require.Equal(t, "something broke", string(fields.Body))
	})

	t.Run("nil error changes nothing", func(t *testing.T) {
		fields := NewResponse().String("untouched").Error(nil).Reveal()
		require.Equal(t, status.OK, fields.Code)
		require.Equal(t, "untouched", string(fields.Body))
	})
}

func TestResponse_TryFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "page.html"), []byte("<p>hi</p>"), 0o644))

	t.Run("existing file", func(t *testing.T) {
		resp, err := NewResponse().TryFile(filepath.Join(root, "page.html"))
		require.NoError(t, err)
		fields := resp.Reveal()
		require.Equal(t, mime.HTML, fields.ContentType)
		require.Equal(t, 9, fields.Attachment.Size())
		fields.Attachment.Close()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewResponse().TryFile(filepath.Join(root, "missing.html"))
		require.Equal(t, status.ErrNotFound, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewResponse().TryFile(root)
		require.Equal(t, status.ErrNotFound, err)
	})
}
