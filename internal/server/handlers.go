package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"openday/internal/apperrors"
	"openday/internal/enroll"
)

func (s *Server) handleCheck(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, req)
		return
	}
	sess, err := s.svc.Check(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "", toCheck(sess))
}

func (s *Server) handleConfirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, req)
		return
	}
	ctx := c.Request.Context()

	sess, err := s.svc.Check(ctx, req.Email)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	out, err := s.svc.Confirm(ctx, sess, enroll.ConfirmInput{
		Name:      req.Name,
		Surname:   req.Surname,
		Challenge: req.Challenge,
		TeamName:  req.Team,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.TypeConflict) {
			s.respondAlreadyRegistered(c, req.Email, err)
			return
		}
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Inscrição confirmada.", toOutcome(out))
}

// respondAlreadyRegistered returns 409 with the stored mode so the client can offer the update.
func (s *Server) respondAlreadyRegistered(c *gin.Context, email string, err error) {
	var data any
	if existing, lerr := s.svc.Lookup(c.Request.Context(), email); lerr == nil && existing != nil {
		data = alreadyRegisteredResponse{
			CurrentMode: string(existing.Mode()),
			NextMode:    string(existing.Mode().Opposite()),
		}
	}
	respond(c, http.StatusConflict, apperrors.PublicMessage(err), data)
}

func (s *Server) handleUpdate(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, req)
		return
	}
	ctx := c.Request.Context()

	sess, err := s.svc.Check(ctx, req.Email)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	out, err := s.svc.Update(ctx, sess, enroll.UpdateInput{TeamName: req.Team})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Inscrição atualizada.", toOutcome(out))
}

func (s *Server) handleCancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, req)
		return
	}
	out, err := s.svc.Cancel(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Inscrição cancelada.", toOutcome(out))
}
