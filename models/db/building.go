package dbmodels

import dictapimodels "maintenance-backend/models/api/dict"

type Building struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);index"`
	Address string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(50)"`
	Zip     string `gorm:"type:varchar(20)"`
}

func (b Building) ToModel() dictapimodels.BuildingView {
	return dictapimodels.BuildingView{
		ID: b.ID,
		BuildingData: dictapimodels.BuildingData{
			Name:    b.Name,
			Address: b.Address,
			City:    b.City,
			State:   b.State,
			Zip:     b.Zip,
		},
	}
}
