// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "io"

// Bucket names used by the content admin.
const (
	BucketProjectImages  = "project-images"
	BucketSkillIcons     = "skill-icons"
	BucketEducationIcons = "education-icons"
	BucketProfileImages  = "profile-images"
	BucketCertificates   = "certificates"
	BucketCVFiles        = "cv-files"
)

const megabyte = 1 << 20

// BucketPolicy restricts what may be stored in a bucket.
type BucketPolicy struct {
	// AllowedTypes lists accepted MIME types. Matching is exact.
	AllowedTypes []string

	// MaxSize is the byte ceiling; files of exactly MaxSize bytes are accepted.
	MaxSize int64
}

// MaxSizeMB returns the ceiling in whole megabytes for error messages.
func (p BucketPolicy) MaxSizeMB() int64 {
	return p.MaxSize / megabyte
}

// Allows reports whether contentType is in the allow list.
func (p BucketPolicy) Allows(contentType string) bool {
	for _, t := range p.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// BucketPolicies maps every known bucket to its upload policy.
var BucketPolicies = map[string]BucketPolicy{
	BucketProjectImages: {
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		MaxSize:      5 * megabyte,
	},
	BucketSkillIcons: {
		AllowedTypes: []string{"image/png", "image/jpeg", "image/svg+xml", "image/webp"},
		MaxSize:      2 * megabyte,
	},
	BucketEducationIcons: {
		AllowedTypes: []string{"image/png", "image/jpeg", "image/svg+xml", "image/webp"},
		MaxSize:      2 * megabyte,
	},
	BucketProfileImages: {
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
		MaxSize:      5 * megabyte,
	},
	BucketCertificates: {
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"},
		MaxSize:      10 * megabyte,
	},
	BucketCVFiles: {
		AllowedTypes: []string{"application/pdf"},
		MaxSize:      10 * megabyte,
	},
}

// MaxUploadSize is the largest ceiling across all buckets.
func MaxUploadSize() int64 {
	var max int64
	for _, p := range BucketPolicies {
		if p.MaxSize > max {
			max = p.MaxSize
		}
	}
	return max
}

// ExtensionForType maps accepted MIME types to object key extensions.
var ExtensionForType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// FileUpload is a file received from the admin UI.
// Body must be readable more than once when retries are enabled, so callers
// pass an [io.ReadSeeker].
type FileUpload struct {
	Bucket      string
	FileName    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// UploadResult describes a stored object.
type UploadResult struct {
	URL    string `json:"url"`
	Key    string `json:"key"`
	Bucket string `json:"bucket"`
}
