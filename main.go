package main

import (
	"log"

	"github.com/ecosenseai/ecosense/config"
	"github.com/ecosenseai/ecosense/db"
	"github.com/ecosenseai/ecosense/mailingservices"
	"github.com/ecosenseai/ecosense/server"
	"github.com/ecosenseai/ecosense/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	reportRepo := db.NewWasteReportRepo(gormDB)
	rewardRepo := db.NewRewardRepo(gormDB)
	ledgerRepo := db.NewLedgerRepo(gormDB)
	hotspotRepo := db.NewHotspotRepo(gormDB)

	authService := services.NewAuthService(authRepo, conf)
	mediaService := services.NewMediaService(conf)
	reportService := services.NewWasteReportService(gormDB, reportRepo, ledgerRepo, conf)
	rewardService := services.NewRewardService(gormDB, rewardRepo, ledgerRepo, authRepo, mailgunClient, conf)

	s := &server.Server{
		Mail:              mailgunClient,
		Config:            conf,
		DB:                gormDB,
		AuthRepository:    authRepo,
		AuthService:       authService,
		MediaService:      mediaService,
		ReportRepository:  reportRepo,
		ReportService:     reportService,
		RewardRepository:  rewardRepo,
		RewardService:     rewardService,
		LedgerRepository:  ledgerRepo,
		HotspotRepository: hotspotRepo,
	}
	s.Start()
}
