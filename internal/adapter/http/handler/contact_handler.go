package handler

import (
	"storefront-gateway/internal/adapter/http/dto"
	"storefront-gateway/pkg/apperror"
	"storefront-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const contactAck = "Your request has been received. A seller will contact you soon."

// ContactHandler acknowledges contact-form submissions.
type ContactHandler struct {
	log zerolog.Logger
}

func NewContactHandler(log zerolog.Logger) *ContactHandler {
	return &ContactHandler{log: log}
}

// Submit handles POST /api/v1/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(&req)

	h.log.Info().Str("email", req.Email).Msg("contact request received")
	response.OK(c, dto.ContactResponse{Message: contactAck, Request: req})
}
