package main

import (
	"net/http"
	"strings"
)

type generateRequest struct {
	Kind    string `json:"kind"`
	Topic   string `json:"topic"`
	Tone    string `json:"tone"`
	Content string `json:"content"`
}

// generateHandler runs one of the writing assistants for the blog editor:
// a full draft from a topic, or an excerpt or tag suggestions from content.
func (app *application) generateHandler(w http.ResponseWriter, r *http.Request) {
	var input generateRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var data map[string]any

	switch strings.ToLower(input.Kind) {
	case "draft":
		draft, err := app.aiService.BlogDraft(r.Context(), input.Topic, input.Tone)
		if err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
		data = map[string]any{"content": draft}
	case "excerpt":
		excerpt, err := app.aiService.Excerpt(r.Context(), input.Content)
		if err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
		data = map[string]any{"excerpt": excerpt}
	case "tags":
		tags, err := app.aiService.SuggestTags(r.Context(), input.Content)
		if err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
		data = map[string]any{"tags": tags}
	default:
		app.failedValidationErrorResponse(w, r, map[string]string{"kind": "must be one of draft, excerpt or tags"})
		return
	}

	app.writeData(w, r, http.StatusOK, success("", data))
}

func (app *application) listContactsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.readPagination(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	contacts, md, err := app.contactService.GetContacts(r.Context(), p)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", contacts).withMetadata(md))
}

type updateContactRequest struct {
	Read *bool `json:"read"`
}

func (app *application) updateContactHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input updateContactRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	read := true
	if input.Read != nil {
		read = *input.Read
	}

	err = app.contactService.MarkRead(r.Context(), id, read)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("contact updated", nil))
}

func (app *application) deleteContactHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.contactService.DeleteContact(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("contact deleted", nil))
}

func (app *application) listSubscribersHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.readPagination(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	activeOnly := app.readString(r, "active", "") == "true"

	subscribers, md, err := app.newsletterService.GetSubscribers(r.Context(), activeOnly, p)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", subscribers).withMetadata(md))
}
