package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/sblrm/cultural-trip-planner/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *tripAPI) writeJSON(w http.ResponseWriter, status int, data envelope,
	headers http.Header) error {

	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (api *tripAPI) errorResponse(w http.ResponseWriter, r *http.Request,
	status int, message interface{}) {

	env := envelope{"error": message}
	if err := api.writeJSON(w, status, env, nil); err != nil {
		api.log.Error("writing error response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *tripAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *tripAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (api *tripAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err),
		zap.String("method", r.Method), zap.String("url", r.URL.String()))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

// getStatusCode maps domain error codes onto HTTP statuses and writes the
// response.
func (api *tripAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *util.Error
	if !errors.As(err, &domainErr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch domainErr.Code() {
	case util.ErrBadParamInput:
		api.BadRequestResponse(w, r, err)
	case util.ErrNotFound:
		api.NotFoundResponse(w, r, err)
	case util.ErrTimeout:
		api.errorResponse(w, r, http.StatusGatewayTimeout, err.Error())
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := validator.ValidationErrors{}
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
