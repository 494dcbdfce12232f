package middleware

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/acadbridge/campus-api/model"
)

// AuditLog records privileged mutations to admin_audit_logs after the
// handler runs. Logging failures never fail the request.
func AuditLog(db *gorm.DB, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return c.Next()
		}

		var resourceID uint
		if id := c.Params("id"); id != "" {
			if parsedID, err := strconv.ParseUint(id, 10, 32); err == nil {
				resourceID = uint(parsedID)
			}
		}

		// Capture the request body; compact it to valid JSON or drop it.
		var newValue json.RawMessage
		if c.Method() == fiber.MethodPost || c.Method() == fiber.MethodPut {
			body := c.Body()
			if json.Valid(body) {
				newValue = append(newValue, body...)
			}
		}

		err := c.Next()

		auditLog := model.AdminAuditLog{
			AdminID:     identity.UserID,
			Action:      action,
			Resource:    resource,
			ResourceID:  resourceID,
			NewValue:    datatypes.JSON(newValue),
			IPAddress:   c.IP(),
			UserAgent:   c.Get("User-Agent"),
			Description: c.Method() + " " + c.Path(),
		}
		db.Create(&auditLog)

		return err
	}
}
