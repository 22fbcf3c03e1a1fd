package controller

import "github.com/labstack/echo/v4"

type MaterialController interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Get(c echo.Context) error
	Patch(c echo.Context) error
	Delete(c echo.Context) error
	Import(c echo.Context) error
	ImportTemplate(c echo.Context) error
}
