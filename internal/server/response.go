package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"openday/internal/apperrors"
	"openday/internal/logging"
)

const (
	msgInvalidRequest = "Pedido inválido."
	msgTooManyRequest = "Demasiados pedidos, tenta novamente mais tarde."
	msgInvalidToken   = "Token inválido."
	msgRouteNotFound  = "Rota não encontrada."
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
		"data":    data,
	})
}

// respondError maps an application error onto its status and public message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context(), logger).Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	respond(c, status, apperrors.PublicMessage(err), nil)
}

// respondBindError reports a body that failed to decode or validate.
func respondBindError(c *gin.Context, err error, model any) {
	respond(c, http.StatusBadRequest, msgInvalidRequest, formatBindErrors(err, model))
}

func formatBindErrors(err error, model any) []fieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []fieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Tipo inválido: esperado %s.", typeErr.Type),
		}}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{Message: "Corpo do pedido inválido."}}
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	out := make([]fieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = fieldError{
			Field:   jsonFieldName(structType, fe.Field()),
			Message: messageForTag(fe.Tag(), fe.Param()),
		}
	}
	return out
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "Campo obrigatório."
	case "max":
		return fmt.Sprintf("Não pode exceder %s caracteres.", param)
	default:
		return "Valor inválido."
	}
}

func jsonFieldName(t reflect.Type, name string) string {
	if t == nil {
		return name
	}
	f, ok := t.FieldByName(name)
	if !ok {
		return name
	}
	tag := f.Tag.Get("json")
	if tag == "" {
		return name
	}
	return strings.Split(tag, ",")[0]
}
