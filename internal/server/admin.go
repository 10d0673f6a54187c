package server

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"openday/internal/models"
	"openday/internal/sheets"
	"openday/internal/util"
)

// requireExportToken guards organizer links with the HMAC export token.
func (s *Server) requireExportToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !util.ValidExportToken(s.cfg.AdminSecret, c.Query("token")) {
			respond(c, http.StatusForbidden, msgInvalidToken, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) handleRoster(c *gin.Context) {
	roster, err := s.svc.Roster(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "", toRoster(roster))
}

func (s *Server) handleExportCSV(c *gin.Context) {
	roster, err := s.svc.Roster(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	body, err := BuildRegistrationsCSV(roster.Registrations)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="registrations.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// BuildRegistrationsCSV renders registrations in the sheet's column order.
func BuildRegistrationsCSV(regs []models.Registration) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(sheets.Header))
	for i, h := range sheets.Header {
		header[i] = fmt.Sprint(h)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range regs {
		rec := []string{
			r.Name,
			r.Surname,
			r.Email,
			models.FormatChallenge(r.Challenge),
			r.TeamName,
			models.FormatTimestamp(r.RegisteredAt),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
