package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mmynk/tripbudget/internal/export"
)

// ExportHandler serves GET /trips/{id}/export.xlsx as a file download.
func (s *BudgetService) ExportHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tripID := r.PathValue("id")

		filename, content, err := s.workbook(r.Context(), tripID)
		if err != nil {
			// Reuse the Connect mapping so both surfaces agree on codes.
			status := httpStatus(toConnectError("ExportHandler", err))
			http.Error(w, http.StatusText(status), status)
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		if _, err := w.Write(content); err != nil {
			slog.Warn("Failed to write export", "trip_id", tripID, "error", err)
		}
	})
}
