// Package validation holds request validation shared by the HTTP handlers.
package validation

import (
	"fmt"
	"mime/multipart"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/storage"
)

var registerOnce sync.Once

// Register installs the custom binding rules on gin's validator engine.
// Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("notblank", notBlank)
	})
	return err
}

// notBlank rejects strings made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// ParseID parses a path id. The error message names the parameter.
func ParseID(param, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("Invalid %s!", param)
	}
	return id, nil
}

// Validator checks uploaded files.
type Validator struct {
	maxUploadSize int64
}

func New(maxUploadSize int64) *Validator {
	return &Validator{maxUploadSize: maxUploadSize}
}

// ValidateUpload checks the size and declared media type of a multipart file.
func (v *Validator) ValidateUpload(file *multipart.FileHeader, kind storage.Kind) error {
	if file == nil {
		return fmt.Errorf("file is missing")
	}
	if v.maxUploadSize > 0 && file.Size > v.maxUploadSize {
		return fmt.Errorf("%s exceeds maximum size of %d bytes", file.Filename, v.maxUploadSize)
	}

	prefix := "image/"
	if kind == storage.KindVideo {
		prefix = "video/"
	}
	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, prefix) && contentType != "application/octet-stream" {
		return fmt.Errorf("%s is not a valid %s file", file.Filename, kind)
	}
	return nil
}
