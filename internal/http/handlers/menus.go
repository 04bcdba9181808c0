package handlers

import (
	"net/http"
	"strconv"

	"github.com/pribylovaa/menu-service/internal/http/response"
	"github.com/pribylovaa/menu-service/internal/models"
)

func (h *Handlers) ListMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.Menus.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteSuccess(w, http.StatusOK, msgMenusListed, models.MenusToResponse(menus))
}

func (h *Handlers) SearchMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.Menus.Search(r.Context(), r.URL.Query().Get("nome"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteSuccess(w, http.StatusOK, msgMenusSearched, models.MenusToResponse(menus))
}

func (h *Handlers) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	menu, err := h.Menus.MenuByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteSuccess(w, http.StatusOK, msgMenuFound, models.MenuToResponse(menu))
}

func (h *Handlers) CreateMenu(w http.ResponseWriter, r *http.Request) {
	var in models.MenuRequest
	if err := decodeStrict(r, &in); err != nil {
		response.WriteError(w, r, err)
		return
	}

	menu, err := h.Menus.Create(actorCtx(r), in.ToInput())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", h.BasePath+"/menu/"+strconv.FormatInt(menu.ID, 10))
	response.WriteSuccess(w, http.StatusCreated, msgMenuCreated, models.MenuToResponse(menu))
}

func (h *Handlers) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var in models.MenuRequest
	if err := decodeStrict(r, &in); err != nil {
		response.WriteError(w, r, err)
		return
	}

	menu, err := h.Menus.Update(actorCtx(r), id, in.ToInput())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteSuccess(w, http.StatusOK, msgMenuUpdated, models.MenuToResponse(menu))
}

func (h *Handlers) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.Menus.Delete(actorCtx(r), id); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteSuccess(w, http.StatusOK, msgMenuDeleted, true)
}
