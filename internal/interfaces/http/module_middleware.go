package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/atp-api/internal/application/dto"
)

// moduleChecker lo cumple *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule corta la petición cuando la empresa del token no tiene contratado
// moduleName (inventory, marketing). Va después de AuthMiddleware.
//
// 401 sin empresa en el contexto, 503 si la consulta falla, 403 si el módulo
// no existe o está vencido.
func RequireModule(moduleName string, checker moduleChecker, log zerolog.Logger) fiber.Handler {
	deny := func(c *fiber.Ctx, status int, code, msg string) error {
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}

	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return deny(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "el token no trae empresa")
		}

		active, err := checker.HasActiveModule(c.UserContext(), companyID, moduleName)
		switch {
		case err != nil:
			log.Error().Err(err).
				Str("company_id", companyID).
				Str("module", moduleName).
				Msg("consulta de módulo contratado")
			return deny(c, fiber.StatusServiceUnavailable, "MODULE_CHECK_FAILED", "no fue posible consultar los módulos de la empresa")
		case !active:
			return deny(c, fiber.StatusForbidden, "MODULE_DISABLED", "la empresa no tiene activo el módulo "+moduleName)
		}
		return c.Next()
	}
}
