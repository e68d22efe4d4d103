package cmd

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/sheet"
	"github.com/jsphweid/chordsheet/transpose"
)

type handlers struct {
	svc *sheet.Service
	log *zap.SugaredLogger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	default:
		h.log.Errorw("Request failed", "error", err)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrapf(errors.ErrInvalidRequest, "could not decode request body: %v", err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidRequest, "bad sheet id %q", raw)
	}
	return id, nil
}

// handleTranspose never fails on unknown keys or chords, it echoes them
func (h *handlers) handleTranspose(w http.ResponseWriter, r *http.Request) {
	var input model.TransposeRequestBody
	if err := decode(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	text := h.svc.Transposer().Transpose(input.Text, input.From, input.To)
	writeJSON(w, http.StatusOK, model.TransposeResponse{Text: text, Stripped: chord.Strip(text)})
}

func (h *handlers) handleKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.KeysResponse{Keys: transpose.Keys()})
}

func (h *handlers) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handlers) handleListSheets(w http.ResponseWriter, r *http.Request) {
	list := h.svc.List
	if r.URL.Query().Get("favorite") == "true" {
		list = h.svc.ListFavorites
	}
	sheets, err := list(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheets)
}

func (h *handlers) handleCreateSheet(w http.ResponseWriter, r *http.Request) {
	var input model.SheetInput
	if err := decode(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) handleGetSheet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *handlers) handleUpdateSheet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var input model.SheetInput
	if err := decode(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	s, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *handlers) handleDeleteSheet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) handleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var input model.FavoriteRequestBody
	if err := decode(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.SetFavorite(r.Context(), id, input.Favorite); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) handleChangeKey(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var input model.KeyChangeRequestBody
	if err := decode(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	s, err := h.svc.ChangeKey(r.Context(), id, input.Key, input.Transpose)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *handlers) handlePreview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	p, err := h.svc.Preview(r.Context(), id, r.URL.Query().Get("key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) handleChords(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	chords, err := h.svc.Chords(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chords)
}

func (h *handlers) handleReorder(w http.ResponseWriter, r *http.Request) {
	var input model.OrderRequestBody
	if err := decode(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.Reorder(r.Context(), input.IDs); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
