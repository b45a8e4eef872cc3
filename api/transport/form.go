package transport

import (
	"bytes"
	"mime/multipart"
)

type formFile struct {
	field    string
	filename string
	data     []byte
}

// Form accumulates fields and file parts for a multipart upload. Field
// order is preserved, matching what the upload endpoints expect for
// repeated keys (sizes, colors, images[]).
type Form struct {
	fields [][2]string
	files  []formFile
}

// NewForm returns an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a text field. Repeated keys are allowed.
func (f *Form) AddField(key, value string) *Form {
	f.fields = append(f.fields, [2]string{key, value})
	return f
}

// AddFile appends a binary part under the given field name.
func (f *Form) AddFile(field, filename string, data []byte) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, data: data})
	return f
}

// Encode renders the multipart body and returns it with its content type.
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.data); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
