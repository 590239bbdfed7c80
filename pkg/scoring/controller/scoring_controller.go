package controller

import "github.com/labstack/echo/v4"

type ScoringController interface {
	Score(c echo.Context) error
	Latest(c echo.Context) error
	History(c echo.Context) error
	Report(c echo.Context) error
	Dashboard(c echo.Context) error
	Recalculate(c echo.Context) error
}
