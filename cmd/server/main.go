package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agrocredit/config"
	"agrocredit/database"
	"agrocredit/router"

	authCtrlImp "agrocredit/pkg/auth/controllerImp"

	farmerCtrlImp "agrocredit/pkg/farmer/controllerImp"
	farmerRepoImp "agrocredit/pkg/farmer/repositoryImp"

	"agrocredit/pkg/ai"
	"agrocredit/pkg/scoring/engine"
	"agrocredit/pkg/scoring/rules"

	scoringCtrlImp "agrocredit/pkg/scoring/controllerImp"
	scoringRepoImp "agrocredit/pkg/scoring/repositoryImp"
	scoringSvcImp "agrocredit/pkg/scoring/serviceImp"

	loanCtrlImp "agrocredit/pkg/loan/controllerImp"
	loanRepoImp "agrocredit/pkg/loan/repositoryImp"
	loanSvcImp "agrocredit/pkg/loan/serviceImp"

	kbCtrlImp "agrocredit/pkg/kb/controllerImp"
	kbEmbedder "agrocredit/pkg/kb/embedder"
	kbRepoImp "agrocredit/pkg/kb/repositoryImp"
	kbSvcImp "agrocredit/pkg/kb/serviceImp"

	healthCtrlImp "agrocredit/pkg/health/controllerImp"
)

func main() {
	cfg := config.Load()

	db := database.OpenSQLite(cfg.DBPath)

	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// scoring rule tables; missing files fall back to the compiled-in defaults
	tbl, err := rules.LoadFromFiles(cfg.YieldCoefficientsCSV, cfg.RateTiersCSV, cfg.RulesOverrideXLSX)
	if err != nil {
		log.Printf("rules warn: %v (using defaults)", err)
		tbl = nil
	}
	eng := engine.New(tbl)

	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		llm = ai.NewMock()
	}

	emb := kbEmbedder.New(cfg.EmbEndpoint, cfg.EmbAPIKey, cfg.EmbModel)
	kbRepo := kbRepoImp.New(db)
	kbSvc := kbSvcImp.New(kbRepo, emb)
	kbCtrl := kbCtrlImp.New(kbSvc, cfg.KBAllowedDomains, cfg.KBMaxBytes)

	fRepo := farmerRepoImp.New(db)
	fCtrl := farmerCtrlImp.New(fRepo)

	sRepo := scoringRepoImp.New(db)
	sSvc := scoringSvcImp.NewScoringService(fRepo, sRepo, eng, llm, kbSvc)
	sCtrl := scoringCtrlImp.New(sSvc, sRepo)

	lRepo := loanRepoImp.New(db)
	lSvc := loanSvcImp.New(lRepo, sRepo, eng)
	loanCtrlImp.New(lSvc).Register(e)

	authCtrl := authCtrlImp.NewAuthController()
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	r := router.New(e, fCtrl, sCtrl, authCtrl, kbCtrl, hCtrl)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
