package validators

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Field names used for field-level scoping and in [FieldError.Field].
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldName         = "name"
	FieldCategory     = "category"
	FieldStatus       = "status"
	FieldType         = "type"
	FieldLevel        = "level"
	FieldURLs         = "urls"
	FieldCompany      = "company"
	FieldPosition     = "position"
	FieldInstitution  = "institution"
	FieldDegree       = "degree"
	FieldDates        = "dates"
	FieldIssuer       = "issuer"
	FieldDate         = "date"
	FieldContent      = "content"
	FieldRating       = "rating"
	FieldSlug         = "slug"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldSubject      = "subject"
	FieldMessage      = "message"
	FieldIP           = "ip"
	FieldReason       = "reason"
	FieldIDs          = "ids"
	FieldBucket       = "bucket"
	FieldFileType     = "file_type"
	FieldFileSize     = "file_size"
	FieldTechnologies = "technologies"
)

const (
	maxShortText = 200
	maxLongText  = 20000
)

var (
	// dottedQuadPattern accepts four dot-separated groups of 1-3 digits;
	// octet ranges are checked separately.
	dottedQuadPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsDottedQuad reports whether ip is an IPv4 address in canonical
// dotted-quad notation: every octet in 0-255 and written without leading
// zeros, so that it compares equal to the address of a connection.
func IsDottedQuad(ip string) bool {
	if !dottedQuadPattern.MatchString(ip) {
		return false
	}
	for _, part := range strings.Split(ip, ".") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return false
		}
		if len(part) > 1 && part[0] == '0' {
			return false
		}
	}
	return true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func longer(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// validURL accepts empty strings and absolute http(s) URLs.
func validURL(s string) bool {
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// parseFlexibleDate parses "YYYY-MM" or "YYYY-MM-DD".
func parseFlexibleDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validPeriod checks that start is a date, end is empty or a date, and
// end is not before start.
func validPeriod(start, end string) error {
	startAt, ok := parseFlexibleDate(start)
	if !ok {
		return fieldError("start_date", "start_date must be YYYY-MM or YYYY-MM-DD")
	}
	if end == "" {
		return nil
	}
	endAt, ok := parseFlexibleDate(end)
	if !ok {
		return fieldError("end_date", "end_date must be YYYY-MM or YYYY-MM-DD")
	}
	if endAt.Before(startAt) {
		return fieldError("end_date", "end_date must not be before start_date")
	}
	return nil
}

func oneOf[T ~string](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
