package controller

import "github.com/labstack/echo/v4"

type WebController interface {
	Index(c echo.Context) error
}
