package controller

import "github.com/labstack/echo/v4"

type ReferenceController interface {
	List(c echo.Context) error
	IngestText(c echo.Context) error
	IngestURL(c echo.Context) error
	Search(c echo.Context) error
	Get(c echo.Context) error
	Delete(c echo.Context) error
}
