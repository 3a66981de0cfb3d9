package main

import (
	"net/http"

	"github.com/sushihentaime/folio/internal/commentservice"
)

func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	comments, err := app.commentService.GetComments(r.Context(), app.readParam(r, "slug"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", comments))
}

type createCommentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// createCommentHandler accepts anonymous comments. Authenticated users comment
// under their username and the name field is ignored.
func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	var input createCommentRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	by := commentservice.Commenter{Name: input.Name}
	if user := app.getUserContext(r); !user.IsAnonymous() {
		by.UserID = user.ID
		by.Username = user.Username
	}

	comment, err := app.commentService.CreateComment(r.Context(), app.readParam(r, "slug"), by, input.Content)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusCreated, success("comment created", comment))
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	err = app.commentService.DeleteComment(r.Context(), id, user.ID, user.IsAdmin())
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("comment deleted", nil))
}
