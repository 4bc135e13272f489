package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/arthur-debert/taxostore/types"
)

func (s *Server) handleListLiterature(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.ListLiterature(r.URL.Query().Get("search")))
}

func (s *Server) handleListTaxonomy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.ListTaxonomy(r.URL.Query().Get("search")))
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.ListSamples(r.URL.Query().Get("search")))
}

func (s *Server) handleGetLiterature(w http.ResponseWriter, r *http.Request) {
	respondGet(s, w, r, s.catalog.GetLiterature)
}

func (s *Server) handleGetTaxonomy(w http.ResponseWriter, r *http.Request) {
	respondGet(s, w, r, s.catalog.GetTaxonomy)
}

func (s *Server) handleGetSample(w http.ResponseWriter, r *http.Request) {
	respondGet(s, w, r, s.catalog.GetSample)
}

func (s *Server) handleUpsertLiterature(w http.ResponseWriter, r *http.Request) {
	respondUpsert(s, w, r, types.KindLiterature, s.catalog.UpsertLiterature)
}

func (s *Server) handleUpsertTaxonomy(w http.ResponseWriter, r *http.Request) {
	respondUpsert(s, w, r, types.KindTaxonomy, s.catalog.UpsertTaxonomy)
}

func (s *Server) handleUpsertSample(w http.ResponseWriter, r *http.Request) {
	respondUpsert(s, w, r, types.KindSample, s.catalog.UpsertSample)
}

func (s *Server) handleDeleteLiterature(w http.ResponseWriter, r *http.Request) {
	respondDelete(s, w, r, types.KindLiterature, s.catalog.DeleteLiterature)
}

func (s *Server) handleDeleteTaxonomy(w http.ResponseWriter, r *http.Request) {
	respondDelete(s, w, r, types.KindTaxonomy, s.catalog.DeleteTaxonomy)
}

func (s *Server) handleDeleteSample(w http.ResponseWriter, r *http.Request) {
	respondDelete(s, w, r, types.KindSample, s.catalog.DeleteSample)
}

func (s *Server) handleImportRIS(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return
	}

	lit, err := s.catalog.ImportRIS(string(body))
	if err != nil {
		s.writeCatalogErr(w, r, err)
		return
	}
	s.metrics.recordWrite(string(types.KindLiterature), "upsert")
	writeJSON(w, http.StatusCreated, lit)
}

func (s *Server) handleTaxonomyLiterature(w http.ResponseWriter, r *http.Request) {
	tax, err := s.catalog.GetTaxonomy(r.PathValue("id"))
	if err != nil {
		s.writeCatalogErr(w, r, err)
		return
	}
	lit, ok := s.catalog.Graph().LiteratureOf(tax)
	if !ok {
		writeErr(w, http.StatusNotFound, fmt.Errorf("taxonomy %s has no resolvable literature (lit_id %q)", tax.ID, tax.LitID))
		return
	}
	writeJSON(w, http.StatusOK, lit)
}

func (s *Server) handleTaxonomyParent(w http.ResponseWriter, r *http.Request) {
	tax, err := s.catalog.GetTaxonomy(r.PathValue("id"))
	if err != nil {
		s.writeCatalogErr(w, r, err)
		return
	}
	parent, ok := s.catalog.Graph().ParentOf(tax)
	if !ok {
		writeErr(w, http.StatusNotFound, fmt.Errorf("taxonomy %s has no resolvable parent (parent_tax_id %q)", tax.ID, tax.ParentTaxID))
		return
	}
	writeJSON(w, http.StatusOK, parent)
}

func (s *Server) handleSampleTaxonomy(w http.ResponseWriter, r *http.Request) {
	smp, err := s.catalog.GetSample(r.PathValue("id"))
	if err != nil {
		s.writeCatalogErr(w, r, err)
		return
	}
	tax, ok := s.catalog.Graph().TaxonomyOf(smp)
	if !ok {
		writeErr(w, http.StatusNotFound, fmt.Errorf("sample %s has no resolvable taxonomy (tax_id %q)", smp.ID, smp.TaxID))
		return
	}
	writeJSON(w, http.StatusOK, tax)
}

func (s *Server) handleGenerateID(w http.ResponseWriter, r *http.Request) {
	id, err := s.catalog.GenerateID(r.PathValue("kind"))
	if err != nil {
		s.writeCatalogErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Stats())
}

func (s *Server) handleCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Graph().Dangling())
}

func respondGet[T any](s *Server, w http.ResponseWriter, r *http.Request, get func(string) (T, error)) {
	rec, err := get(r.PathValue("id"))
	if err != nil {
		s.writeCatalogErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func respondUpsert[T any](s *Server, w http.ResponseWriter, r *http.Request, kind types.Kind, upsert func(T) (T, error)) {
	var rec T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&rec); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	stored, err := upsert(rec)
	if err != nil {
		s.writeCatalogErr(w, r, err)
		return
	}
	s.metrics.recordWrite(string(kind), "upsert")
	writeJSON(w, http.StatusCreated, stored)
}

func respondDelete(s *Server, w http.ResponseWriter, r *http.Request, kind types.Kind, remove func(string) (bool, error)) {
	removed, err := remove(r.PathValue("id"))
	if err != nil {
		s.writeCatalogErr(w, r, err)
		return
	}
	if removed {
		s.metrics.recordWrite(string(kind), "delete")
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": removed})
}
