package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"connectong/internal/validation"
)

const (
	// maxUploadRead caps how much of one uploaded file is kept in memory.
	// Anything larger is already rejected by the upload rule, so the tail can
	// be dropped while the real size is still reported.
	maxUploadRead = validation.MaxLogoBytes + 1
	maxBodyBytes  = 8 << 20
)

var errBadForm = errors.New("malformed form")

// readForm accepts multipart, urlencoded or JSON bodies.
func readForm(w http.ResponseWriter, r *http.Request) (validation.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		return readJSONForm(r.Body)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			return validation.Form{}, fmt.Errorf("%w: %v", errBadForm, err)
		}
		form := validation.Form{Values: r.MultipartForm.Value, Files: map[string]validation.File{}}
		for name, headers := range r.MultipartForm.File {
			if len(headers) == 0 || headers[0].Filename == "" {
				continue
			}
			file, err := readUpload(headers[0])
			if err != nil {
				return validation.Form{}, err
			}
			form.Files[name] = file
		}
		return form, nil
	default:
		if err := r.ParseForm(); err != nil {
			return validation.Form{}, fmt.Errorf("%w: %v", errBadForm, err)
		}
		return validation.Form{Values: r.PostForm}, nil
	}
}

func readUpload(h *multipart.FileHeader) (validation.File, error) {
	f, err := h.Open()
	if err != nil {
		return validation.File{}, fmt.Errorf("%w: open %s: %v", errBadForm, h.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadRead))
	if err != nil {
		return validation.File{}, fmt.Errorf("%w: read %s: %v", errBadForm, h.Filename, err)
	}
	contentType := h.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mt
	}
	return validation.File{Name: h.Filename, ContentType: contentType, Size: h.Size, Data: data}, nil
}

// readJSONForm flattens a JSON object into form values: strings, numbers and
// booleans become single values, arrays become repeated values.
func readJSONForm(body io.Reader) (validation.Form, error) {
	var raw map[string]any
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return validation.Form{}, fmt.Errorf("%w: %v", errBadForm, err)
	}
	values := make(map[string][]string, len(raw))
	for key, v := range raw {
		switch val := v.(type) {
		case []any:
			for _, item := range val {
				if s, ok := scalar(item); ok {
					values[key] = append(values[key], s)
				}
			}
		default:
			if s, ok := scalar(val); ok {
				values[key] = []string{s}
			}
		}
	}
	return validation.Form{Values: values}, nil
}

func scalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
