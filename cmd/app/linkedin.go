package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/folio/internal/linkedinservice"
)

func (app *application) linkedInErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, linkedinservice.ErrUserForeignKey):
		app.invalidAuthenticationTokenResponse(w, r)
	default:
		app.serviceErrorResponse(w, r, err)
	}
}

func (app *application) listLinkedInContentHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.readPagination(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	contents, md, err := app.linkedInService.GetContents(r.Context(), app.readString(r, "kind", ""), p)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", contents).withMetadata(md))
}

type createLinkedInContentRequest struct {
	linkedinservice.SaveContentRequest
	// Generate asks the model to write the post from topic and style.
	Generate bool `json:"generate"`
}

func (app *application) createLinkedInContentHandler(w http.ResponseWriter, r *http.Request) {
	var input createLinkedInContentRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	userID := app.getUserContext(r).ID

	var content *linkedinservice.Content
	if input.Generate {
		content, err = app.linkedInService.GeneratePost(r.Context(), userID, input.Topic, input.Style)
	} else {
		input.UserID = userID
		content, err = app.linkedInService.SaveContent(r.Context(), &input.SaveContentRequest)
	}
	if err != nil {
		app.linkedInErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusCreated, success("content saved", content))
}

type generateCarouselRequest struct {
	Topic  string `json:"topic"`
	Slides int    `json:"slides"`
	Style  string `json:"style"`
}

func (app *application) generateCarouselHandler(w http.ResponseWriter, r *http.Request) {
	var input generateCarouselRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	content, err := app.linkedInService.GenerateCarousel(r.Context(), app.getUserContext(r).ID, input.Topic, input.Slides, input.Style)
	if err != nil {
		app.linkedInErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusCreated, success("carousel generated", content))
}

func (app *application) showLinkedInContentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	content, err := app.linkedInService.GetContent(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", content))
}

func (app *application) updateLinkedInContentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input linkedinservice.UpdateContentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	content, err := app.linkedInService.UpdateContent(r.Context(), id, &input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("content updated", content))
}

func (app *application) deleteLinkedInContentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.linkedInService.DeleteContent(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("content deleted", nil))
}

type reorderSlidesRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

func (app *application) reorderSlidesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input reorderSlidesRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.From == nil || input.To == nil {
		fields := map[string]string{}
		if input.From == nil {
			fields["from"] = "must be provided"
		}
		if input.To == nil {
			fields["to"] = "must be provided"
		}
		app.failedValidationErrorResponse(w, r, fields)
		return
	}

	content, err := app.linkedInService.ReorderSlides(r.Context(), id, *input.From, *input.To)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("slides reordered", content))
}
