package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

const multipartMemory = 32 << 20

// hotelInput is the validated request payload shared by create and update.
type hotelInput struct {
	Name          string   `json:"name" validate:"required"`
	City          string   `json:"city" validate:"required"`
	Country       string   `json:"country" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Type          string   `json:"type" validate:"required"`
	PricePerNight *float64 `json:"pricePerNight" validate:"required,gt=0"`
	Facilities    []string `json:"facilities" validate:"required,min=1,dive,required"`
	ImageURLs     []string `json:"imageUrls"`
}

func (in hotelInput) toDomain() domain.Hotel {
	h := domain.Hotel{
		Name:        in.Name,
		City:        in.City,
		Country:     in.Country,
		Description: in.Description,
		Type:        in.Type,
		Facilities:  in.Facilities,
		ImageURLs:   in.ImageURLs,
	}
	if in.PricePerNight != nil {
		h.PricePerNight = *in.PricePerNight
	}
	return h
}

type badRequest struct{ errs []fieldError }

func (b *badRequest) Error() string { return "bad request" }

func invalid(field, msg string) error {
	return &badRequest{errs: []fieldError{{Field: field, Message: msg}}}
}

// bindHotel reads a hotel payload from a multipart form or a JSON body,
// validates it and loads at most maxFiles images (maxFiles < 0 means no cap).
func (h *Handlers) bindHotel(r *http.Request, maxFiles int) (hotelInput, []domain.ImageFile, error) {
	var in hotelInput
	var files []domain.ImageFile

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return in, nil, invalid("body", "Invalid multipart body")
		}
		in = hotelFromForm(r.MultipartForm.Value)
		var err error
		if files, err = h.readImages(r.MultipartForm.File["imageFiles"], maxFiles); err != nil {
			return in, nil, err
		}
	default:
		var err error
		if in, err = hotelFromJSON(r.Body); err != nil {
			return in, nil, invalid("body", "Invalid request body")
		}
	}

	if errs := check(in); errs != nil {
		return in, nil, &badRequest{errs: errs}
	}
	return in, files, nil
}

func (h *Handlers) readImages(fhs []*multipart.FileHeader, maxFiles int) ([]domain.ImageFile, error) {
	if maxFiles >= 0 && len(fhs) > maxFiles {
		return nil, invalid("imageFiles", fmt.Sprintf("At most %d images are allowed", maxFiles))
	}
	out := make([]domain.ImageFile, 0, len(fhs))
	for _, fh := range fhs {
		if fh.Size > h.MaxImageBytes {
			return nil, invalid("imageFiles", fmt.Sprintf("%s exceeds the %d byte limit", fh.Filename, h.MaxImageBytes))
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		mt := fh.Header.Get("Content-Type")
		if mt == "" || mt == "application/octet-stream" {
			mt = http.DetectContentType(data)
		}
		out = append(out, domain.ImageFile{Name: fh.Filename, MimeType: mt, Data: data})
	}
	return out, nil
}

func hotelFromForm(v map[string][]string) hotelInput {
	in := hotelInput{
		Name:        formValue(v, "name"),
		City:        formValue(v, "city"),
		Country:     formValue(v, "country"),
		Description: formValue(v, "description"),
		Type:        formValue(v, "type"),
		Facilities:  formList(v, "facilities"),
		ImageURLs:   formList(v, "imageUrls"),
	}
	in.PricePerNight = parsePrice(formValue(v, "pricePerNight"))
	return in
}

func formValue(v map[string][]string, k string) string {
	if vs := v[k]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

// formList collects repeated k values followed by indexed k[0], k[1]... values.
// It returns nil when the form carries no such key at all.
func formList(v map[string][]string, k string) []string {
	var out []string
	if vs, ok := v[k]; ok {
		out = append(out, vs...)
	}
	if vs, ok := v[k+"[]"]; ok {
		out = append(out, vs...)
	}
	type indexed struct {
		i int
		v []string
	}
	var idx []indexed
	for key, vs := range v {
		if !strings.HasPrefix(key, k+"[") || !strings.HasSuffix(key, "]") {
			continue
		}
		n, err := strconv.Atoi(key[len(k)+1 : len(key)-1])
		if err != nil {
			continue
		}
		idx = append(idx, indexed{n, vs})
	}
	sort.Slice(idx, func(a, b int) bool { return idx[a].i < idx[b].i })
	for _, e := range idx {
		out = append(out, e.v...)
	}
	if out == nil {
		return nil
	}
	trimmed := make([]string, 0, len(out))
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return trimmed
}

// parsePrice returns nil for anything that is not a finite number, so
// "Infinity" and "NaN" fail the required check.
func parsePrice(s string) *float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return finite(p)
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// hotelFromJSON accepts pricePerNight as a JSON number or a numeric string.
func hotelFromJSON(body io.Reader) (hotelInput, error) {
	var raw struct {
		hotelInput
		PricePerNight json.RawMessage `json:"pricePerNight"`
	}
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return hotelInput{}, err
	}
	in := raw.hotelInput
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = strings.TrimSpace(in.Type)

	if len(raw.PricePerNight) > 0 {
		var f float64
		var s string
		switch {
		case json.Unmarshal(raw.PricePerNight, &f) == nil:
			in.PricePerNight = finite(f)
		case json.Unmarshal(raw.PricePerNight, &s) == nil:
			in.PricePerNight = parsePrice(s)
		}
	}
	return in, nil
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	owner := UserID(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.MaxCreateImages+1)*h.MaxImageBytes)

	in, files, err := h.bindHotel(r, h.MaxCreateImages)
	if err != nil {
		var br *badRequest
		if errors.As(err, &br) {
			writeValidation(w, br.errs)
			return
		}
		log.Error().Err(err).Str("user", owner).Msg("read create hotel request failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	hotel, err := h.Hotels.CreateHotel(r.Context(), owner, in.toDomain(), files)
	if err != nil {
		log.Error().Err(err).Str("user", owner).Msg("create hotel failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusCreated, hotel)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	owner := UserID(r.Context())
	hotels, err := h.Hotels.ListHotels(r.Context(), owner)
	if err != nil {
		log.Error().Err(err).Str("user", owner).Msg("list hotels failed")
		writeMessage(w, http.StatusInternalServerError, "Error fetching hotels")
		return
	}
	if hotels == nil {
		hotels = []domain.Hotel{}
	}
	writeCached(w, r, hotels)
}

// getHotel answers 200 with null when the hotel is missing or owned by someone else.
func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	owner := UserID(r.Context())
	id := chi.URLParam(r, "id")
	hotel, err := h.Hotels.GetHotel(r.Context(), owner, id)
	if err != nil {
		log.Error().Err(err).Str("user", owner).Str("hotel", id).Msg("get hotel failed")
		writeMessage(w, http.StatusInternalServerError, "Error fetching hotels")
		return
	}
	writeCached(w, r, hotel)
}

// updateHotel answers 201 on success; clients depend on that status.
func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	owner := UserID(r.Context())
	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpdateBytes)

	in, files, err := h.bindHotel(r, -1)
	if err != nil {
		var br *badRequest
		if errors.As(err, &br) {
			writeValidation(w, br.errs)
			return
		}
		log.Error().Err(err).Str("user", owner).Msg("read update hotel request failed")
		writeMessage(w, http.StatusInternalServerError, "Something Went Wrong")
		return
	}

	upd := in.toDomain()
	upd.ID = id
	hotel, err := h.Hotels.UpdateHotel(r.Context(), owner, upd, files)
	if errors.Is(err, domain.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Hotel not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("user", owner).Str("hotel", id).Msg("update hotel failed")
		writeMessage(w, http.StatusInternalServerError, "Something Went Wrong")
		return
	}
	writeJSON(w, http.StatusCreated, hotel)
}
