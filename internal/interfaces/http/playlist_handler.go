package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// PlaylistHandler listas ordenadas de canciones para enviar a un contacto.
type PlaylistHandler struct {
	uc *usecase.PlaylistUseCase
}

func NewPlaylistHandler(uc *usecase.PlaylistUseCase) *PlaylistHandler {
	return &PlaylistHandler{uc: uc}
}

func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreatePlaylistRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *PlaylistHandler) GetByID(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), uid, id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *PlaylistHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	p := pageParams(c)
	out, err := h.uc.List(c.UserContext(), uid, search(c), p)
	if err != nil {
		return err
	}
	return paged(c, out, p)
}

func (h *PlaylistHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdatePlaylistRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), uid, id); err != nil {
		return err
	}
	return deleted(c, id)
}

// AddSong agrega una canción al final de la lista; repetirla no la duplica.
// POST /api/playlists/:id/songs
func (h *PlaylistHandler) AddSong(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.AddPlaylistSongRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddSong(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// RemoveSong DELETE /api/playlists/:id/songs/:songId
func (h *PlaylistHandler) RemoveSong(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	songID, err := pathID(c, "songId")
	if err != nil {
		return err
	}
	out, err := h.uc.RemoveSong(c.UserContext(), uid, id, songID)
	if err != nil {
		return err
	}
	return ok(c, out)
}
