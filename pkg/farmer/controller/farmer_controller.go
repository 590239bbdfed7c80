package controller

import "github.com/labstack/echo/v4"

type FarmerController interface {
	Create(c echo.Context) error
	CreateFarm(c echo.Context) error
	Get(c echo.Context) error
	Profile(c echo.Context) error
	List(c echo.Context) error
}
