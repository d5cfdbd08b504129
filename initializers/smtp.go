package initializers

import (
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	"maintenance-backend/lib/smtp"
)

func InitSmtp() {
	if config.Conf.Smtp.Host == "" {
		log.Warn("smtp не настроен, письма отправляться не будут")
		return
	}
	err := smtp.Connect(smtp.Config{
		User:       config.Conf.Smtp.User,
		Password:   config.Conf.Smtp.Password,
		Host:       config.Conf.Smtp.Host,
		Port:       config.Conf.Smtp.Port,
		TLSEnabled: *config.Conf.Smtp.TLSEnabled,
		From:       config.Conf.Smtp.From,
		FromName:   config.Conf.Smtp.FromName,
	})
	if err != nil {
		panic(err.Error())
	}
}
