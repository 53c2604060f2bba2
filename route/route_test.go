package route_test

import (
	"testing"

	"github.com/fwojciec/mapsrc"
	"github.com/fwojciec/mapsrc/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_CategoryRoute(t *testing.T) {
	t.Parallel()

	r := route.NewResolver(map[int]string{
		2: "/news/",
		3: "blog/tech",
		4: "/",
	})

	tests := []struct {
		name string
		id   int
		want string
	}{
		{name: "menu path with slashes trimmed", id: 2, want: "/news"},
		{name: "nested menu path", id: 3, want: "/blog/tech"},
		{name: "empty menu path falls back", id: 4, want: "/category/4"},
		{name: "no menu entry falls back", id: 9, want: "/category/9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.CategoryRoute(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects non-positive id", func(t *testing.T) {
		t.Parallel()

		_, err := r.CategoryRoute(0)

		assert.Equal(t, mapsrc.EROUTE, mapsrc.ErrorCode(err))
	})
}

func TestResolver_ItemRoute(t *testing.T) {
	t.Parallel()

	r := route.NewResolver(map[int]string{2: "news"})

	t.Run("routes below category menu path", func(t *testing.T) {
		t.Parallel()

		got, err := r.ItemRoute(42, "hello-world", 2)
		require.NoError(t, err)
		assert.Equal(t, "/news/42-hello-world", got)
	})

	t.Run("routes below fallback category path", func(t *testing.T) {
		t.Parallel()

		got, err := r.ItemRoute(7, "post", 5)
		require.NoError(t, err)
		assert.Equal(t, "/category/5/7-post", got)
	})

	t.Run("omits empty alias", func(t *testing.T) {
		t.Parallel()

		got, err := r.ItemRoute(7, "", 2)
		require.NoError(t, err)
		assert.Equal(t, "/news/7", got)
	})

	t.Run("escapes alias", func(t *testing.T) {
		t.Parallel()

		got, err := r.ItemRoute(7, "a b/c", 2)
		require.NoError(t, err)
		assert.Equal(t, "/news/7-a%20b%2Fc", got)
	})

	t.Run("rejects non-positive item id", func(t *testing.T) {
		t.Parallel()

		_, err := r.ItemRoute(0, "post", 2)

		assert.Equal(t, mapsrc.EROUTE, mapsrc.ErrorCode(err))
	})

	t.Run("rejects non-positive category id", func(t *testing.T) {
		t.Parallel()

		_, err := r.ItemRoute(7, "post", 0)

		assert.Equal(t, mapsrc.EROUTE, mapsrc.ErrorCode(err))
	})
}

func TestParseMenu(t *testing.T) {
	t.Parallel()

	t.Run("parses id=path pairs", func(t *testing.T) {
		t.Parallel()

		menu, err := route.ParseMenu([]string{"2=/news", " 3 = blog "})
		require.NoError(t, err)

		assert.Equal(t, map[int]string{2: "/news", 3: "blog"}, menu)
	})

	t.Run("returns empty menu for no pairs", func(t *testing.T) {
		t.Parallel()

		menu, err := route.ParseMenu(nil)
		require.NoError(t, err)

		assert.Empty(t, menu)
	})

	t.Run("rejects malformed entries", func(t *testing.T) {
		t.Parallel()

		for _, pair := range []string{"news", "x=/news", "0=/news", "-1=/news"} {
			_, err := route.ParseMenu([]string{pair})
			assert.Equal(t, mapsrc.EINVALID, mapsrc.ErrorCode(err), pair)
		}
	})
}
