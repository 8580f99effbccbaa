package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

var businessMessages = map[string]string{
	"time_conflict":         "This time slot was just taken.",
	"appointment_not_found": "Appointment not found.",
	"invalid_status":        "New appointments must be PENDING.",
	"invalid_date_or_time":  "Invalid date or time.",
	"too_soon":              "That time has already passed.",
	"doctor_not_found":      "Doctor not found.",
	"outside_opening_hours": "The doctor is not available at that time.",
	"invalid_state":         "The appointment can no longer be changed.",
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// writeUsecaseError answers business errors with their mapped status;
// anything else is logged and reported as 500.
func writeUsecaseError(c *gin.Context, logger *zap.Logger, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Internal(c, "internal_error", "Something went wrong. Try again.")
		return
	}

	msg, ok := businessMessages[be.Code]
	if !ok {
		msg = be.Code
	}
	httperr.Business(c, be, msg)
}
