// Package bill holds the pure rules applied to expense bills: proof
// validation, ordering, grouping by status, form mapping and display
// formatting.
package bill

import "github.com/garyjia/bill-review/internal/domain/entity"

// Accepted proof MIME types
const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

// IsValidProof reports whether the declared type of a proof file is an accepted image type
func IsValidProof(file entity.ProofFile) bool {
	return IsValidProofType(file.Type)
}

// IsValidProofType reports whether mimeType is image/jpeg or image/png.
// The comparison is exact: parameters or different casing are rejected.
func IsValidProofType(mimeType string) bool {
	switch mimeType {
	case MimeJPEG, MimePNG:
		return true
	default:
		return false
	}
}
