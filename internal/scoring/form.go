package scoring

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// FormFile is one file part of an upload form.
type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

// Form is the data a user submits: plain fields and files, kept in the
// order they were added.
type Form struct {
	fields []formField
	files  []FormFile
}

type formField struct {
	name, value string
}

func (f *Form) AddField(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

func (f *Form) AddFile(field, filename string, content io.Reader) {
	f.files = append(f.files, FormFile{Field: field, Filename: filename, Content: content})
}

// Filenames lists the names of the attached files.
func (f *Form) Filenames() []string {
	names := make([]string, 0, len(f.files))
	for _, file := range f.files {
		names = append(names, file.Filename)
	}
	return names
}

// FormFromRequest copies the fields and files of an already parsed multipart
// request into a Form. The caller must keep the request alive until the form
// has been encoded.
func FormFromRequest(r *http.Request) (*Form, error) {
	if r.MultipartForm == nil {
		return nil, fmt.Errorf("request has no multipart form")
	}
	form := &Form{}
	for name, values := range r.MultipartForm.Value {
		for _, v := range values {
			form.AddField(name, v)
		}
	}
	for field, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			file, err := fh.Open()
			if err != nil {
				form.Close()
				return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
			}
			form.AddFile(field, fh.Filename, file)
		}
	}
	return form, nil
}

// Close closes every file content that implements io.Closer.
func (f *Form) Close() error {
	var first error
	for _, file := range f.files {
		if c, ok := file.Content.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// OpenFile attaches a file from disk under the given field name.
func (f *Form) OpenFile(field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	f.AddFile(field, filepath.Base(path), file)
	return nil
}

// Encode writes the form as multipart/form-data and returns the body and its
// content type.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range f.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", file.Filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
