package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrocredit/pkg/scoring/repository"
	"agrocredit/pkg/scoring/service"
	"agrocredit/pkg/scoring/types"
)

type ScoringCtrl struct {
	svc   service.ScoringService
	store repository.ScoringRepository
}

func New(svc service.ScoringService, store repository.ScoringRepository) *ScoringCtrl {
	return &ScoringCtrl{svc: svc, store: store}
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrFarmerNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrNoFarm), errors.Is(err, types.ErrIncompleteProfile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrInvalidLoanParameters):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *ScoringCtrl) Score(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad farmer id"})
	}
	out, err := h.svc.ComputeAndStore(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(httpStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ScoringCtrl) Latest(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	res, err := h.store.LatestByFarmer(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no scoring result"})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ScoringCtrl) History(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	hist, err := h.store.HistoryByFarmer(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, hist)
}

func (h *ScoringCtrl) Report(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	txt, err := h.svc.Report(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(httpStatus(err), map[string]string{"error": err.Error()})
	}
	return c.String(http.StatusOK, txt)
}

// Dashboard lists the current result per farmer, best score first.
func (h *ScoringCtrl) Dashboard(c echo.Context) error {
	res, err := h.store.AllLatest(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ScoringCtrl) Recalculate(c echo.Context) error {
	sum, err := h.svc.RecalculateAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, sum)
}
