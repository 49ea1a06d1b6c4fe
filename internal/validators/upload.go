package validators

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/portfolio-cms/models"
)

// validateFileUpload checks a file against its bucket policy. Type is
// checked before size so that a wrong file is reported as such even when
// it is also too large.
func (v *ContentValidator) validateFileUpload(u *models.FileUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBucket, FieldFileType, FieldFileSize}
	}

	policy, known := models.BucketPolicies[u.Bucket]

	for _, f := range fields {
		switch f {
		case FieldBucket:
			if !known {
				return fieldError(FieldBucket, "Unknown bucket: %s", u.Bucket)
			}
		case FieldFileType:
			if !known {
				return fieldError(FieldBucket, "Unknown bucket: %s", u.Bucket)
			}
			if !policy.Allows(u.ContentType) {
				return fieldError(FieldFileType, "Invalid file type. Allowed types: %s", strings.Join(policy.AllowedTypes, ", "))
			}
		case FieldFileSize:
			if !known {
				return fieldError(FieldBucket, "Unknown bucket: %s", u.Bucket)
			}
			if u.Size <= 0 {
				return fieldError(FieldFileSize, "File is empty")
			}
			if u.Size > policy.MaxSize {
				return fieldError(FieldFileSize, "File size must be less than %s", formatMB(policy.MaxSizeMB()))
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func formatMB(mb int64) string {
	return fmt.Sprintf("%dMB", mb)
}
