package x_data_test

import (
	"path/filepath"
	"testing"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	list := x_data.Builtin()
	require.Len(t, list, 10)
	for i, d := range list {
		assert.Equal(t, i+1, d.ID)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.File)
		assert.NotEmpty(t, d.Attributes)
	}

	// copies do not leak into the catalog
	list[0].Attributes[0] = "changed"
	assert.Equal(t, "B", x_data.Builtin()[0].Attributes[0])
}

func TestCatalog_Lookup(t *testing.T) {
	c, err := x_data.NewCatalog()
	require.NoError(t, err)

	d, err := c.Lookup("4")
	require.NoError(t, err)
	assert.Equal(t, "car", d.Name)
	assert.Equal(t, []string{"buying", "maint", "doors", "persons", "lug_boot", "safety", "class"}, d.Attributes)

	d, err = c.Lookup(" Mushroom ")
	require.NoError(t, err)
	assert.Equal(t, 3, d.ID)
	assert.Len(t, d.Attributes, 23)

	_, err = c.Lookup("11")
	assert.ErrorIs(t, err, constant.ErrUnknownDataset)
	_, err = c.Lookup("iris")
	assert.ErrorIs(t, err, constant.ErrUnknownDataset)
}

func TestCatalog_Add(t *testing.T) {
	c, err := x_data.NewCatalog(x_data.Dataset{Name: "basket", File: "basket.csv"})
	require.NoError(t, err)

	d, err := c.Lookup("basket")
	require.NoError(t, err)
	assert.Equal(t, 11, d.ID)
	assert.Empty(t, d.Attributes)

	// replacing keeps the number
	require.NoError(t, c.Add(x_data.Dataset{Name: "car", File: "/abs/car.csv"}))
	d, err = c.Lookup("car")
	require.NoError(t, err)
	assert.Equal(t, 4, d.ID)
	assert.Equal(t, "/abs/car.csv", d.Path("/data"))

	assert.ErrorIs(t, c.Add(x_data.Dataset{File: "x"}), constant.ErrBadRequest)
	assert.ErrorIs(t, c.Add(x_data.Dataset{Name: "x"}), constant.ErrBadRequest)

	list := c.List()
	require.Len(t, list, 11)
	assert.Equal(t, "basket", list[10].Name)
}

func TestDataset_Path(t *testing.T) {
	d := x_data.Dataset{File: "car.data"}
	assert.Equal(t, filepath.Join("data", "car.data"), d.Path("data"))
	assert.Equal(t, "car.data", d.Path(""))
}
