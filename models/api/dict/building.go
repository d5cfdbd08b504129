package dictapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type BuildingData struct {
	Name    string `json:"name"`    // название здания
	Address string `json:"address"` // улица, дом
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type BuildingView struct {
	BuildingData
	ID string `json:"id"`
}

type BuildingFind struct {
	Name string `json:"name" query:"name"`
}

func (b BuildingData) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("не указано название здания")
	}
	if strings.TrimSpace(b.Address) == "" {
		return errors.New("не указан адрес здания")
	}
	return nil
}
