package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

var errBadForm = errors.New("invalid multipart form")

// formOverhead is the room left for text fields on top of the file limit.
const formOverhead = 1 << 20

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// parseMultipart reads the whole form, bounded by the file limit.
func parseMultipart(w http.ResponseWriter, r *http.Request, lim media.Limits) error {
	r.Body = http.MaxBytesReader(w, r.Body, lim.MaxBytes+formOverhead)
	if err := r.ParseMultipartForm(lim.MaxBytes + formOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return fmt.Errorf("%w: file exceeds %d bytes", media.ErrInvalidUpload, lim.MaxBytes)
		}
		return fmt.Errorf("%w: %v", errBadForm, err)
	}
	return nil
}

// formUpload returns the validated file under field, or nil when the form
// has none.
func formUpload(r *http.Request, field string, lim media.Limits) (*media.Upload, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadForm, err)
	}
	defer f.Close()

	up, err := media.ReadUpload(f, hdr.Filename, lim)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// formValue returns a pointer to the first value of key, or nil when the
// form does not carry it.
func formValue(r *http.Request, key string) *string {
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

// formList accepts either repeated keys or one comma separated value.
func formList(r *http.Request, key string) *[]string {
	vs, ok := r.MultipartForm.Value[key]
	if !ok {
		return nil
	}
	if len(vs) == 1 && strings.Contains(vs[0], ",") {
		vs = strings.Split(vs[0], ",")
	}
	return &vs
}

// decodeContent reads a content body as JSON or as a multipart form with an
// optional "image" file.
func decodeContent(w http.ResponseWriter, r *http.Request) (service.ContentPatch, *media.Upload, error) {
	var patch service.ContentPatch

	if !isMultipart(r) {
		if err := httpx.DecodeJSON(w, r, &patch); err != nil {
			return patch, nil, err
		}
		return patch, nil, nil
	}

	if err := parseMultipart(w, r, media.ContentLimits); err != nil {
		return patch, nil, err
	}
	patch.Title = formValue(r, "title")
	patch.Body = formValue(r, "content")
	patch.Categories = formList(r, "categories")

	up, err := formUpload(r, "image", media.ContentLimits)
	return patch, up, err
}

// contentInput turns a decoded body into a create request.
func contentInput(p service.ContentPatch) service.ContentInput {
	var in service.ContentInput
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Body != nil {
		in.Body = *p.Body
	}
	if p.Categories != nil {
		in.Categories = *p.Categories
	}
	return in
}

// decodeUserUpdate reads a user patch as JSON or as a multipart form with an
// optional "profilePic" file.
func decodeUserUpdate(w http.ResponseWriter, r *http.Request) (service.UserUpdateInput, *media.Upload, error) {
	var in service.UserUpdateInput

	if !isMultipart(r) {
		err := httpx.DecodeJSON(w, r, &in)
		return in, nil, err
	}

	if err := parseMultipart(w, r, media.ProfileLimits); err != nil {
		return in, nil, err
	}
	in.FirstName = formValue(r, "firstName")
	in.LastName = formValue(r, "lastName")
	in.Username = formValue(r, "username")
	in.Email = formValue(r, "email")
	in.Phone = formValue(r, "phone")
	in.Password = formValue(r, "password")
	in.Role = formValue(r, "role")

	up, err := formUpload(r, "profilePic", media.ProfileLimits)
	return in, up, err
}
