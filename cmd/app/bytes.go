package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/folio/internal/byteservice"
)

func (app *application) listBytesHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.readPagination(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	bytes, md, err := app.byteService.GetBytes(r.Context(), p)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", bytes).withMetadata(md))
}

func (app *application) showByteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	b, err := app.byteService.GetByte(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", b))
}

func (app *application) createByteHandler(w http.ResponseWriter, r *http.Request) {
	var input byteservice.CreateByteRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.UserID = app.getUserContext(r).ID

	b, err := app.byteService.CreateByte(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, byteservice.ErrUserForeignKey):
			app.invalidAuthenticationTokenResponse(w, r)
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, success("byte created", b))
}

func (app *application) updateByteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input byteservice.UpdateByteRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	b, err := app.byteService.UpdateByte(r.Context(), id, &input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("byte updated", b))
}

func (app *application) deleteByteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.byteService.DeleteByte(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("byte deleted", nil))
}
