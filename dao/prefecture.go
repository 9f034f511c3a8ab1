package dao

import (
	"Marche/models"

	"gorm.io/gorm"
)

type Prefecture struct {
	Repo[models.Prefecture]
}

func NewPrefecture(db *gorm.DB) *Prefecture {
	return &Prefecture{
		Repo: NewRepo[models.Prefecture](db),
	}
}
