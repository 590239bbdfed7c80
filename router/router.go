package router

import (
	"github.com/labstack/echo/v4"

	"agrocredit/pkg/middleware"
)

func New(
	e *echo.Echo,
	farmerCtrl interface {
		Create(echo.Context) error
		CreateFarm(echo.Context) error
		Get(echo.Context) error
		Profile(echo.Context) error
		List(echo.Context) error
	},
	scoringCtrl interface {
		Score(echo.Context) error
		Latest(echo.Context) error
		History(echo.Context) error
		Report(echo.Context) error
		Dashboard(echo.Context) error
		Recalculate(echo.Context) error
	},
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	kbCtrl interface {
		IngestText(echo.Context) error
		IngestURL(echo.Context) error
		Search(echo.Context) error
		ListDocs(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.DevLogin())
	api := e.Group("")

	api.GET("/whoami", authCtrl.WhoAmI)
	api.GET("/devlogin", authCtrl.DevLogin)
	e.GET("/health", healthCtrl.Health)

	api.POST("/kb/ingest", kbCtrl.IngestText)
	api.POST("/kb/ingest/url", kbCtrl.IngestURL)
	api.GET("/kb/search", kbCtrl.Search)
	api.GET("/kb/docs", kbCtrl.ListDocs)

	api.POST("/farmers", farmerCtrl.Create)
	api.GET("/farmers", farmerCtrl.List)
	api.GET("/farmers/:id", farmerCtrl.Get)
	api.GET("/farmers/:id/profile", farmerCtrl.Profile)
	api.POST("/farmers/:id/farms", farmerCtrl.CreateFarm)

	g := e.Group("/farmers")
	g.POST("/:id/score", scoringCtrl.Score)
	g.GET("/:id/scoring/latest", scoringCtrl.Latest)
	g.GET("/:id/scoring/history", scoringCtrl.History)
	g.GET("/:id/scoring/report", scoringCtrl.Report)

	api.GET("/scoring/latest", scoringCtrl.Dashboard)
	api.POST("/scoring/recalculate", scoringCtrl.Recalculate)
	return e
}
