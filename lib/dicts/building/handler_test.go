package buildingprovider

import (
	"testing"

	"github.com/stretchr/testify/require"
	"maintenance-backend/db/testdb"
	"maintenance-backend/lib/dicts/building/store"
	dictapimodels "maintenance-backend/models/api/dict"
)

func TestBuildingHandler(t *testing.T) {
	h := NewHandlerWithStore(store.NewInstance(testdb.New(t)))
	data := dictapimodels.BuildingData{
		Name:    "Oak Tower",
		Address: "100 Main St",
		City:    "Austin",
		State:   "TX",
		Zip:     "78701",
	}

	id, err := h.Create(data)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	t.Run("дубликат названия", func(t *testing.T) {
		_, err := h.Create(dictapimodels.BuildingData{Name: "oak tower", Address: "1 Other St"})
		require.Error(t, err)
	})
	t.Run("поиск", func(t *testing.T) {
		list, err := h.List(dictapimodels.BuildingFind{Name: "oak"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "100 Main St", list[0].Address)
	})
	t.Run("обновление", func(t *testing.T) {
		data.Zip = "78702"
		require.NoError(t, h.Update(id, data))
		item, err := h.Get(id)
		require.NoError(t, err)
		require.Equal(t, "78702", item.Zip)
	})
	t.Run("неверная ссылка", func(t *testing.T) {
		rec, err := h.Resolve("missing")
		require.NoError(t, err)
		require.Nil(t, rec)
		rec, err = h.Resolve("")
		require.NoError(t, err)
		require.Nil(t, rec)
		_, err = h.Get("missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
