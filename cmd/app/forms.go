package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/folio/internal/newsletterservice"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	var input contactRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	_, err = app.contactService.SubmitContact(r.Context(), input.Name, input.Email, input.Message)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusCreated, success("thanks for reaching out, your message has been sent", nil))
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var input subscribeRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	_, err = app.newsletterService.Subscribe(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, newsletterservice.ErrAlreadySubscribed):
			app.conflictErrorResponse(w, r, "already subscribed", map[string]string{"email": "this email address is already subscribed"})
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, success("subscribed to the newsletter", nil))
}

type unsubscribeRequest struct {
	Token string `json:"token"`
}

func (app *application) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	var input unsubscribeRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.newsletterService.Unsubscribe(r.Context(), input.Token)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("unsubscribed from the newsletter", nil))
}
