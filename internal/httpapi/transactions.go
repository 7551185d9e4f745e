package httpapi

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/records/internal/service/command"
)

// POST /api/v1/transactions
func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
    in, ok := r.Context().Value(ctxKeyPostTransaction).(command.CreateRequest)
    if !ok { writeErr(w, http.StatusInternalServerError, msgInternal, codeInternal); return }
    created, err := s.cmd.CreateTransaction(r.Context(), in)
    if err != nil { writeServiceErr(w, r, s.log, err); return }
    w.Header().Set("Location", "/api/v1/transactions/"+created.ID)
    writeJSON(w, http.StatusCreated, s.toTransactionResponse(created))
}

// GET /api/v1/transactions?page=&size=
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
    q, ok := r.Context().Value(ctxKeyListTransactions).(listTransactionsQuery)
    if !ok { writeErr(w, http.StatusInternalServerError, msgInternal, codeInternal); return }
    page, err := s.qry.GetPageTransactions(r.Context(), q.Page, q.Size)
    if err != nil { writeServiceErr(w, r, s.log, err); return }
    writeJSON(w, http.StatusOK, s.toPageResponse(q, page))
}

// GET /api/v1/transactions/{id}
func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
    rec, err := s.qry.GetTransactionByID(r.Context(), chi.URLParam(r, "id"))
    if err != nil { writeServiceErr(w, r, s.log, err); return }
    writeJSON(w, http.StatusOK, s.toTransactionResponse(rec))
}

// PUT|PATCH /api/v1/transactions/{id}
func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
    in, ok := r.Context().Value(ctxKeyUpdateTransaction).(command.UpdateRequest)
    if !ok { writeErr(w, http.StatusInternalServerError, msgInternal, codeInternal); return }
    updated, err := s.cmd.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), in)
    if err != nil { writeServiceErr(w, r, s.log, err); return }
    writeJSON(w, http.StatusOK, s.toTransactionResponse(updated))
}

// DELETE /api/v1/transactions/{id}
func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
    if err := s.cmd.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
        writeServiceErr(w, r, s.log, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
