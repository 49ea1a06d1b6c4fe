package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/portfolio-cms/models"
)

// ContentValidator implements the Validator interface for every record
// and request accepted by the API. Both value and pointer forms are accepted.
// Optional fields restrict validation to the named subset; when omitted, all
// rules for the type are applied in a fixed order and the first failure is
// returned.
type ContentValidator struct {
}

// NewContentValidator constructs a new ContentValidator and returns it as
// the Validator interface.
func NewContentValidator() Validator {
	return &ContentValidator{}
}

// Validate dispatches validation based on the dynamic type of obj.
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *ContentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case *models.Project:
		return v.validateProject(value, fields...)
	case models.Project:
		return v.validateProject(&value, fields...)
	case *models.Skill:
		return v.validateSkill(value, fields...)
	case models.Skill:
		return v.validateSkill(&value, fields...)
	case *models.Experience:
		return v.validateExperience(value, fields...)
	case models.Experience:
		return v.validateExperience(&value, fields...)
	case *models.Education:
		return v.validateEducation(value, fields...)
	case models.Education:
		return v.validateEducation(&value, fields...)
	case *models.Certification:
		return v.validateCertification(value, fields...)
	case models.Certification:
		return v.validateCertification(&value, fields...)
	case *models.Testimonial:
		return v.validateTestimonial(value, fields...)
	case models.Testimonial:
		return v.validateTestimonial(&value, fields...)
	case *models.BlogPost:
		return v.validateBlogPost(value, fields...)
	case models.BlogPost:
		return v.validateBlogPost(&value, fields...)

	case *models.ContactRequest:
		return v.validateContactRequest(value, fields...)
	case models.ContactRequest:
		return v.validateContactRequest(&value, fields...)
	case *models.StatusUpdateRequest:
		return v.validateStatusUpdate(value, fields...)
	case models.StatusUpdateRequest:
		return v.validateStatusUpdate(&value, fields...)
	case *models.BlockIPRequest:
		return v.validateBlockIPRequest(value, fields...)
	case models.BlockIPRequest:
		return v.validateBlockIPRequest(&value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case models.LoginRequest:
		return v.validateLoginRequest(&value, fields...)
	case *models.ReorderRequest:
		return v.validateReorderRequest(value, fields...)
	case models.ReorderRequest:
		return v.validateReorderRequest(&value, fields...)

	case *models.FileUpload:
		return v.validateFileUpload(value, fields...)
	case models.FileUpload:
		return v.validateFileUpload(&value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ContentValidator) validateProject(p *models.Project, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription, FieldStatus, FieldType, FieldURLs, FieldTechnologies}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if blank(p.Title) {
				return required(FieldTitle)
			}
			if longer(p.Title, maxShortText) {
				return tooLong(FieldTitle, maxShortText)
			}
		case FieldDescription:
			if blank(p.Description) {
				return required(FieldDescription)
			}
			if longer(p.Description, maxLongText) {
				return tooLong(FieldDescription, maxLongText)
			}
		case FieldStatus:
			if !oneOf(p.Status, models.ProjectCompleted, models.ProjectInProgress, models.ProjectPlanned) {
				return fieldError(FieldStatus, "status must be one of: completed, in_progress, planned")
			}
		case FieldType:
			if !oneOf(p.Type, models.ProjectWeb, models.ProjectMobile, models.ProjectDesktop, models.ProjectLibrary, models.ProjectOther) {
				return fieldError(FieldType, "type must be one of: web, mobile, desktop, library, other")
			}
		case FieldURLs:
			if !validURL(p.GithubURL) {
				return fieldError("github_url", "github_url must be an http(s) URL")
			}
			if !validURL(p.LiveURL) {
				return fieldError("live_url", "live_url must be an http(s) URL")
			}
		case FieldTechnologies:
			for _, t := range p.Technologies {
				if blank(t) {
					return fieldError(FieldTechnologies, "technologies must not contain empty entries")
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateSkill(s *models.Skill, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldCategory, FieldLevel}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if blank(s.Name) {
				return required(FieldName)
			}
			if longer(s.Name, maxShortText) {
				return tooLong(FieldName, maxShortText)
			}
		case FieldCategory:
			if blank(s.Category) {
				return required(FieldCategory)
			}
		case FieldLevel:
			if !oneOf(s.Level, models.SkillBeginner, models.SkillIntermediate, models.SkillAdvanced, models.SkillExpert) {
				return fieldError(FieldLevel, "level must be one of: beginner, intermediate, advanced, expert")
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateExperience(e *models.Experience, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCompany, FieldPosition, FieldDates}
	}

	for _, f := range fields {
		switch f {
		case FieldCompany:
			if blank(e.Company) {
				return required(FieldCompany)
			}
		case FieldPosition:
			if blank(e.Position) {
				return required(FieldPosition)
			}
		case FieldDates:
			if blank(e.StartDate) {
				return required("start_date")
			}
			if err := validPeriod(e.StartDate, e.EndDate); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateEducation(e *models.Education, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldInstitution, FieldDegree, FieldDates}
	}

	for _, f := range fields {
		switch f {
		case FieldInstitution:
			if blank(e.Institution) {
				return required(FieldInstitution)
			}
		case FieldDegree:
			if blank(e.Degree) {
				return required(FieldDegree)
			}
		case FieldDates:
			if blank(e.StartDate) {
				return required("start_date")
			}
			if err := validPeriod(e.StartDate, e.EndDate); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateCertification(c *models.Certification, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldIssuer, FieldDate, FieldCategory, FieldURLs}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if blank(c.Title) {
				return required(FieldTitle)
			}
		case FieldIssuer:
			if blank(c.Issuer) {
				return required(FieldIssuer)
			}
		case FieldDate:
			if blank(c.Date) {
				return required(FieldDate)
			}
			if _, ok := parseFlexibleDate(c.Date); !ok {
				return fieldError(FieldDate, "date must be YYYY-MM or YYYY-MM-DD")
			}
		case FieldCategory:
			if !oneOf(c.Category, models.CertificationCourse, models.CertificationCompetition) {
				return fieldError(FieldCategory, "category must be one of: course, competition")
			}
		case FieldURLs:
			if !validURL(c.URL) {
				return fieldError("url", "url must be an http(s) URL")
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateTestimonial(t *models.Testimonial, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldContent, FieldRating}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if blank(t.Name) {
				return required(FieldName)
			}
		case FieldContent:
			if blank(t.Content) {
				return required(FieldContent)
			}
			if longer(t.Content, maxLongText) {
				return tooLong(FieldContent, maxLongText)
			}
		case FieldRating:
			if t.Rating < 1 || t.Rating > 5 {
				return fieldError(FieldRating, "rating must be between 1 and 5")
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateBlogPost(b *models.BlogPost, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldSlug, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if blank(b.Title) {
				return required(FieldTitle)
			}
			if longer(b.Title, maxShortText) {
				return tooLong(FieldTitle, maxShortText)
			}
		case FieldSlug:
			if blank(b.Slug) {
				return required(FieldSlug)
			}
			if !slugPattern.MatchString(b.Slug) {
				return fieldError(FieldSlug, "slug must contain lowercase letters, digits and single dashes")
			}
		case FieldContent:
			if blank(b.Content) {
				return required(FieldContent)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateReorderRequest(r *models.ReorderRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldIDs:
			if len(r.IDs) == 0 {
				return required(FieldIDs)
			}
			seen := make(map[string]struct{}, len(r.IDs))
			for _, id := range r.IDs {
				if strings.TrimSpace(id) == "" {
					return fieldError(FieldIDs, "ids must not contain empty entries")
				}
				if _, dup := seen[id]; dup {
					return fieldError(FieldIDs, "ids must be unique")
				}
				seen[id] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
