package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{name: "defaults", query: "", want: Pagination{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{name: "explicit", query: "?page=3&limit=5", want: Pagination{Page: 3, Limit: 5, Offset: 10}},
		{name: "invalid", query: "?page=-1&limit=abc", want: Pagination{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{name: "capped", query: "?limit=1000", want: Pagination{Page: 1, Limit: MaxLimit, Offset: 0}},
		{name: "huge page", query: "?page=9223372036854775807&limit=2", want: Pagination{Page: math.MaxInt / 2, Limit: 2, Offset: (math.MaxInt/2 - 1) * 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Pagination
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = ParseFromRequest(c)
				return nil
			})

			_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Pagination{Page: 2, Limit: 2, Offset: 2}
	assert.Equal(t, []int{3, 4}, Slice(&p, items))
	assert.Equal(t, int64(5), p.Total)

	p = Pagination{Page: 3, Limit: 2, Offset: 4}
	assert.Equal(t, []int{5}, Slice(&p, items))

	p = Pagination{Page: 9, Limit: 2, Offset: 16}
	assert.Empty(t, Slice(&p, items))

	p = Pagination{Page: 2, Limit: 2, Offset: -2}
	assert.Empty(t, Slice(&p, items))

	p = Pagination{Page: math.MaxInt / 2, Limit: 2, Offset: math.MaxInt - 1}
	assert.Empty(t, Slice(&p, items))

	meta := Response(Pagination{Page: 1, Limit: 2, Total: 5}, nil)["meta"].(fiber.Map)
	assert.Equal(t, int64(3), meta["total_pages"])
}
