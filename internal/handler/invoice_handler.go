package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/relandlord/invoice-intake/internal/middleware"
	"github.com/relandlord/invoice-intake/internal/models"
	"github.com/relandlord/invoice-intake/internal/service"
)

// Max 32MB of form data held in memory per request.
const maxFormBytes = 32 << 20

type InvoiceHandler struct {
	svc        *service.InvoiceService
	components []string
}

func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, components: svc.Components()}
}

// Submit handles POST /submit_invoice. Missing scalar fields default to
// empty strings; any failure, input or remote, comes back as a 500 with a
// flat {"error": ...} body — the contract the front-end expects.
func (h *InvoiceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		h.fail(w, r, service.InputError("parse form", err))
		return
	}

	sub := models.Submission{
		RentStart: r.FormValue("rent_start"),
		RentEnd:   r.FormValue("rent_end"),
		Name:      r.FormValue("name"),
		Mobile:    r.FormValue("mobile"),
		Email:     r.FormValue("email"),
		City:      r.FormValue("city"),
		GSTType:   r.FormValue("gst_type"),
	}

	files := make(map[string][]models.Upload)
	for _, comp := range h.components {
		key := strings.ToLower(comp) + "_files[]"
		for _, fh := range r.MultipartForm.File[key] {
			f, err := fh.Open()
			if err != nil {
				h.fail(w, r, service.InputError("open "+key+" part", err))
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				h.fail(w, r, service.InputError("read "+key+" part", err))
				return
			}
			files[comp] = append(files[comp], models.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	ticketID, err := h.svc.Submit(r.Context(), sub, files)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ticket_id": ticketID})
}

func (h *InvoiceHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := "unknown"
	var se *service.Error
	if errors.As(err, &se) {
		kind = se.Kind.String()
	}
	log.Printf("[%s] submit failed (%s): %v", middleware.RequestID(r.Context()), kind, err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
