package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Normalize(t *testing.T) {
	t.Run("clamps pagination into range", func(t *testing.T) {
		f := Filter{Page: 0, Limit: 500}
		f.Normalize()
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 100, f.Limit)

		f = Filter{Page: -3, Limit: 0}
		f.Normalize()
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 20, f.Limit)
	})

	t.Run("keeps plain column names in the projection", func(t *testing.T) {
		f := Filter{Fields: []string{" Name ", "unit_price", "sku2"}}
		f.Normalize()
		assert.Equal(t, []string{"name", "unit_price", "sku2"}, f.Fields)
	})

	t.Run("drops anything that is not a column identifier", func(t *testing.T) {
		f := Filter{Fields: []string{"name; drop table users", "1st", "", "unit-price", "_hidden"}}
		f.Normalize()
		assert.Empty(t, f.Fields)
	})
}

func TestFilter_Offset(t *testing.T) {
	f := Filter{Page: 3, Limit: 20}
	assert.Equal(t, 40, f.Offset())
}
