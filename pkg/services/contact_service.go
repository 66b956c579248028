package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/logging"
	"github.com/applianceiq/consumables-engine/pkg/models"
)

// ContactService relays homeowner contact requests to the on-call pro.
// There is no persistence yet; requests are logged for pickup by the
// operations alerting pipeline, with email and phone masked.
type ContactService interface {
	Submit(ctx context.Context, req *models.ContactRequest) error
}

type contactService struct {
	logger *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(logger *zap.Logger) ContactService {
	return &contactService{
		logger: logger.Named("contact-service"),
	}
}

var _ ContactService = (*contactService)(nil)

func (s *contactService) Submit(ctx context.Context, req *models.ContactRequest) error {
	s.logger.Info("Contact request received",
		zap.String("name", req.Name),
		zap.String("email", logging.MaskEmail(req.Email)),
		zap.String("phone", logging.MaskPhone(req.Phone)),
		zap.String("zip_code", req.ZipCode),
		zap.String("appliance_category", req.ApplianceCategory),
		zap.String("model", req.Model),
		zap.String("preferred_time", req.PreferredTime),
		zap.String("notes", logging.TruncateString(req.Notes, 200)))

	return nil
}
