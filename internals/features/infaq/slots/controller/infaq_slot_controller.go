package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"infaqku_backend/internals/features/infaq/slots/dto"
	"infaqku_backend/internals/features/infaq/slots/repository"
	"infaqku_backend/internals/features/infaq/slots/service"
	helper "infaqku_backend/internals/helpers"
)

type InfaqSlotController struct {
	svc *service.ContributionService
	log *zap.Logger
}

func NewInfaqSlotController(svc *service.ContributionService, log *zap.Logger) *InfaqSlotController {
	return &InfaqSlotController{svc: svc, log: log.Named("infaq.http")}
}

// 🟢 CONTRIBUTE: tambah unit / sponsor ongkir ke slot (merge atau buat slot baru)
func (ctl *InfaqSlotController) Contribute(c *fiber.Ctx) error {
	var body dto.ContributeRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ContributeResult{
			Success: false,
			Message: "Invalid request body",
		})
	}

	res, err := ctl.svc.Contribute(c.UserContext(), body)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": res.Success,
				"message": res.Message,
				"errors":  verr.Fields,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// 🟢 GET ALL SLOTS: ?from=&to=&mosque=&page=&per_page=
func (ctl *InfaqSlotController) ListSlots(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctl.svc.ListSlots(c.UserContext(), service.ListQuery{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Mosque: c.Query("mosque"),
		Offset: p.Offset,
		Limit:  p.Limit,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return helper.ErrorWithDetails(c, fiber.StatusBadRequest, verr.Message, verr.Fields)
		}
		ctl.log.Error("list slot gagal", zap.Error(err))
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data slot")
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// 🟢 GET SLOT BY ID: lengkap dengan log kontribusi
func (ctl *InfaqSlotController) GetSlot(c *fiber.Ctx) error {
	slot, err := ctl.svc.GetSlot(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, service.ErrInvalidSlotID):
		return helper.Error(c, fiber.StatusBadRequest, "ID slot tidak valid")
	case errors.Is(err, repository.ErrSlotNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Slot tidak ditemukan")
	case err != nil:
		ctl.log.Error("get slot gagal", zap.String("id", c.Params("id")), zap.Error(err))
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data slot")
	}

	return helper.Success(c, "ok", dto.FromModel(*slot, true))
}
