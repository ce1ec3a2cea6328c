package services

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	MaxResumeBytes = 5 * 1024 * 1024
)

var acceptedResumeTypes = map[string]bool{
	MIMETypePDF:  true,
	MIMETypeDOCX: true,
}

func IsAcceptedResumeType(mimeType string) bool {
	return acceptedResumeTypes[mimeType]
}

type DataURI struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI decodes a base64 data URI of the form
// "data:<mime>[;param=value]*;base64,<payload>".
func ParseDataURI(uri string) (*DataURI, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URI")
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("data URI has no payload")
	}

	params := strings.Split(header, ";")
	if params[len(params)-1] != "base64" {
		return nil, fmt.Errorf("data URI payload is not base64 encoded")
	}

	mimeType := strings.ToLower(strings.TrimSpace(params[0]))
	if mimeType == "" {
		return nil, fmt.Errorf("data URI has no media type")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}

	return &DataURI{MIMEType: mimeType, Data: data}, nil
}

func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ValidateResumeDocument parses a resume data URI and enforces the size cap
// and the accepted document types.
func ValidateResumeDocument(uri string) (*DataURI, error) {
	doc, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}

	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("resume file is empty")
	}
	if len(doc.Data) > MaxResumeBytes {
		return nil, fmt.Errorf("resume file is %d bytes, limit is %d", len(doc.Data), MaxResumeBytes)
	}
	if !IsAcceptedResumeType(doc.MIMEType) {
		return nil, fmt.Errorf("unsupported resume type %q, expected PDF or DOCX", doc.MIMEType)
	}

	return doc, nil
}
