package report

import (
	"net/http"
	"time"

	"Hidro/internal/history"
	"Hidro/internal/metrics"
)

type Handler struct {
	Store *history.Store
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	data, err := BuildPDF(h.Store.Entries(), time.Now())
	metrics.IncExport("pdf", err == nil)
	if err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"historico.pdf\"")
	w.Write(data)
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	data, err := BuildXLSX(h.Store.Entries())
	metrics.IncExport("xlsx", err == nil)
	if err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"historico.xlsx\"")
	w.Write(data)
}
