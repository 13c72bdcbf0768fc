package config

import (
	"main/utils"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func LoadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:     utils.GetEnvAsString("SMTP_HOST", "localhost"),
		Port:     utils.GetEnvAsInt("SMTP_PORT", 587),
		Username: utils.GetEnvAsString("SMTP_USERNAME", ""),
		Password: utils.GetEnvAsString("SMTP_PASSWORD", ""),
		From:     utils.GetEnvAsString("SMTP_FROM", "noreply@fundoo-notes.local"),
	}
}
