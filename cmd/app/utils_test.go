package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/folio/internal/common"
)

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "Valid", body: `{"name": "alice", "age": 3}`},
		{name: "Empty", body: ``, wantErr: "request body must not be empty"},
		{name: "Badly Formed", body: `{"name": "alice",}`, wantErr: "badly-formed JSON"},
		{name: "Truncated", body: `{"name": "alice"`, wantErr: "badly-formed JSON"},
		{name: "Wrong Type", body: `{"age": "three"}`, wantErr: `invalid value for the "age" field`},
		{name: "Unknown Field", body: `{"email": "a@b.c"}`, wantErr: `unknown field "email"`},
		{name: "Two Values", body: `{"name": "a"}{"name": "b"}`, wantErr: "single JSON value"},
	}

	app := newBareApplication()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			res := httptest.NewRecorder()

			var dst payload
			err := app.parseJSON(res, req, &dst)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.Equal(t, "alice", dst.Name)
				assert.Equal(t, 3, dst.Age)
				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestReadPagination(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    common.Pagination
		wantErr bool
	}{
		{name: "Defaults", query: "", want: common.Pagination{Page: 1, Limit: common.DefaultPageSize}},
		{name: "Explicit", query: "?page=3&limit=20", want: common.Pagination{Page: 3, Limit: 20}},
		{name: "Capped", query: "?limit=1000", want: common.Pagination{Page: 1, Limit: common.MaxPageSize}},
		{name: "Negative Page", query: "?page=-2", want: common.Pagination{Page: 1, Limit: common.DefaultPageSize}},
		{name: "Not A Number", query: "?page=two", wantErr: true},
	}

	app := newBareApplication()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

			p, err := app.readPagination(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestReadIDParam(t *testing.T) {
	app := newBareApplication()

	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := context.WithValue(req.Context(), httprouter.ParamsKey, httprouter.Params{{Key: "id", Value: tt.value}})
			req = req.WithContext(ctx)

			id, err := app.readIDParam(req, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestSuccessEnvelope(t *testing.T) {
	env := success("", []int{1})
	assert.Equal(t, true, env["success"])
	assert.NotContains(t, env, "message")
	assert.NotContains(t, env, "metadata")

	env = success("created", nil).withMetadata(common.Metadata{TotalRecords: 1})
	assert.Equal(t, "created", env["message"])
	assert.Contains(t, env, "data")
	assert.Equal(t, common.Metadata{TotalRecords: 1}, env["metadata"])
}
