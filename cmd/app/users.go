package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/folio/internal/userservice"
)

type registerUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input registerUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.userService.CreateUser(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.conflictErrorResponse(w, r, "duplicate account", map[string]string{"email": "a user with this email address already exists"})
		case errors.Is(err, userservice.ErrDuplicateUsername):
			app.conflictErrorResponse(w, r, "duplicate account", map[string]string{"username": "this username is already taken"})
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, success("user account created, check your email to activate it", nil))
}

type activateUserRequest struct {
	Token string `json:"token"`
}

func (app *application) activateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input activateUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.userService.ActivateUser(r.Context(), input.Token)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.failedValidationErrorResponse(w, r, map[string]string{"token": "invalid or expired activation token"})
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, success("user account activated", nil))
}

type loginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	token, err := app.userService.LoginUser(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, success("", token))
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input refreshTokenRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	token, err := app.userService.RefreshAuthToken(r.Context(), input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidAuthenticationTokenResponse(w, r)
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, success("", token))
}

func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	err := app.userService.LogoutUser(r.Context(), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("logged out", nil))
}

func (app *application) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	app.writeData(w, r, http.StatusOK, success("", app.getUserContext(r)))
}
