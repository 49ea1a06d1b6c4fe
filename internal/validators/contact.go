package validators

import (
	"strings"

	"github.com/MKhiriev/portfolio-cms/models"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 254
	maxMessageLength = 5000
	maxReasonLength  = 500
)

func (v *ContentValidator) validateContactRequest(r *models.ContactRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if blank(r.Name) {
				return required(FieldName)
			}
			if longer(r.Name, maxNameLength) {
				return tooLong(FieldName, maxNameLength)
			}
		case FieldEmail:
			if blank(r.Email) {
				return required(FieldEmail)
			}
			if longer(r.Email, maxEmailLength) || !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
				return fieldError(FieldEmail, "email must be a valid email address")
			}
		case FieldSubject:
			if blank(r.Subject) {
				return required(FieldSubject)
			}
			if longer(r.Subject, maxShortText) {
				return tooLong(FieldSubject, maxShortText)
			}
		case FieldMessage:
			if blank(r.Message) {
				return required(FieldMessage)
			}
			if longer(r.Message, maxMessageLength) {
				return tooLong(FieldMessage, maxMessageLength)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateStatusUpdate(r *models.StatusUpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStatus}
	}

	for _, f := range fields {
		switch f {
		case FieldStatus:
			if !oneOf(r.Status, models.MessageUnread, models.MessageRead, models.MessageReplied) {
				return fieldError(FieldStatus, "status must be one of: unread, read, replied")
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateBlockIPRequest(r *models.BlockIPRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIP, FieldReason}
	}

	for _, f := range fields {
		switch f {
		case FieldIP:
			if blank(r.IP) {
				return required(FieldIP)
			}
			if !IsDottedQuad(r.IP) {
				return fieldError(FieldIP, "Invalid IP address format")
			}
		case FieldReason:
			if longer(r.Reason, maxReasonLength) {
				return tooLong(FieldReason, maxReasonLength)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateLoginRequest(r *models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if blank(r.Email) {
				return required(FieldEmail)
			}
		case FieldPassword:
			if r.Password == "" {
				return required(FieldPassword)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
