package service

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"strings"
)

// NewTicketID returns "TKT-" plus four uniform decimal digits. Tickets are
// human-facing references, not keys: collisions across submissions are
// possible and tolerated.
func NewTicketID() string {
	return fmt.Sprintf("TKT-%d", 1000+rand.IntN(9000))
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename flattens a caller-supplied filename into something safe
// to hand to the file store: path separators and traversal segments are
// dropped, remaining segments joined with underscores, and anything outside
// [A-Za-z0-9_.-] replaced.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")

	var kept []string
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		kept = append(kept, part)
	}

	out := strings.Join(kept, "_")
	out = unsafeChars.ReplaceAllString(out, "_")
	out = strings.Trim(out, "._")
	if out == "" {
		return "upload"
	}
	return out
}

// detectContentType falls back to an extension lookup when the form part
// declared no content type.
func detectContentType(fileName string) string {
	types := map[string]string{
		".pdf":  "application/pdf",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".gif":  "image/gif",
		".heic": "image/heic",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".xls":  "application/vnd.ms-excel",
		".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".csv":  "text/csv",
		".txt":  "text/plain",
		".zip":  "application/zip",
	}
	if ct, ok := types[strings.ToLower(filepath.Ext(fileName))]; ok {
		return ct
	}
	return "application/octet-stream"
}
