package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrocredit/entities"
	lsvc "agrocredit/pkg/loan/service"
	"agrocredit/pkg/scoring/types"
)

type httpCtrl struct{ s lsvc.LoanService }

func New(s lsvc.LoanService) *httpCtrl { return &httpCtrl{s: s} }

func (h *httpCtrl) Register(e *echo.Echo) {
	e.POST("/farms/:farm_id/loans", h.create)
	e.GET("/farms/:farm_id/loans", h.list)
	e.GET("/loans/pending", h.pending)
	e.PATCH("/loans/:id", h.patch)
	e.GET("/loans/:id/preview", h.preview)
}

func (h *httpCtrl) create(c echo.Context) error {
	farmID, err := strconv.ParseUint(c.Param("farm_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid farm_id"})
	}
	var in entities.LoanRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	in.FarmID = uint(farmID)
	if err := h.s.Create(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *httpCtrl) list(c echo.Context) error {
	farmID, err := strconv.ParseUint(c.Param("farm_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid farm_id"})
	}
	list, err := h.s.ListByFarm(uint(farmID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) pending(c echo.Context) error {
	list, err := h.s.ListPending()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) patch(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in lsvc.LoanPatch
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.s.UpdatePartial(uint(id), in)
	if err != nil {
		if errors.Is(err, types.ErrInvalidLoanParameters) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) preview(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.s.Preview(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
