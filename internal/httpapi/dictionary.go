package httpapi

import (
    "net/http"

    "github.com/tinoosan/records/internal/dictionary"
    "github.com/tinoosan/records/internal/record"
)

// GET /api/v1/dictionary/types
func (s *Server) getTypesDictionary(w http.ResponseWriter, r *http.Request) {
    out := struct {
        Items []record.Type `json:"items"`
    }{Items: record.Types()}
    writeJSON(w, http.StatusOK, out)
}

// GET /api/v1/dictionary/categories?type=
func (s *Server) getCategoriesDictionary(w http.ResponseWriter, r *http.Request) {
    type categoryItem struct {
        Type       record.Type              `json:"type"`
        Categories []dictionary.CategoryDef `json:"categories"`
    }
    var filter *record.Type
    if raw := r.URL.Query().Get("type"); raw != "" {
        t, err := record.ParseType(raw)
        if err != nil { badRequest(w, err.Error()); return }
        filter = &t
    }
    out := struct {
        Items []categoryItem `json:"items"`
    }{Items: []categoryItem{}}
    for _, typ := range record.Types() {
        if filter != nil && *filter != typ { continue }
        out.Items = append(out.Items, categoryItem{Type: typ, Categories: dictionary.CategoriesFor(typ)})
    }
    writeJSON(w, http.StatusOK, out)
}
