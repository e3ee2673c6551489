package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/payment-gateway/api"
	appvalidator "github.com/metinatakli/payment-gateway/internal/validator"
	"github.com/stripe/stripe-go/v82"
)

const ErrInternalServer = "The server encountered a problem and could not process your request"

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		app.serverErrorResponse(w, r, err)
		return
	}

	validationErrors := make([]api.ValidationError, 0, len(vErrs))
	for _, vErr := range vErrs {
		validationErrors = append(validationErrors, api.ValidationError{
			Field: vErr.Field(),
			Issue: appvalidator.ValidationMessage(vErr),
		})
	}

	resp := api.ValidationErrorResponse{
		Message:          "The request contains invalid fields",
		ValidationErrors: validationErrors,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}

// processorErrorResponse surfaces a failed payment processor call. Stripe errors
// carry a user-presentable message; anything else gets the generic 500.
func (app *Application) processorErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		app.errorResponse(w, r, http.StatusBadGateway, stripeErr.Msg)
		return
	}

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}
