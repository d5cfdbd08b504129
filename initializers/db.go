package initializers

import (
	"maintenance-backend/config"
	"maintenance-backend/db"
)

func InitDBConnection() {
	dbConf := config.Conf.Database
	err := db.Connect(db.Options{
		Host:         dbConf.Host,
		Port:         dbConf.Port,
		Name:         dbConf.Name,
		User:         dbConf.User,
		Password:     dbConf.Password,
		DebugMode:    *dbConf.DebugMode,
		Migrate:      *dbConf.MigrateOnStart,
		MaxOpenConns: dbConf.MaxOpenConns,
	})
	if err != nil {
		panic(err.Error())
	}
}
