package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

func TestCreateJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/jobs", r.URL.Path)

		in := &structs.CreateJobRequest{}
		assert.Nil(t, json.NewDecoder(r.Body).Decode(in))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(&structs.Job{ID: "abc", Status: structs.PROCESSING, Prompt: in.Prompt, Style: in.Style})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	assert.Nil(t, err)

	job, err := c.CreateJob(context.Background(), &structs.CreateJobRequest{Prompt: "owl", Style: structs.StyleAbstract})

	assert.Nil(t, err)
	assert.Equal(t, "abc", job.ID)
	assert.Equal(t, structs.PROCESSING, job.Status)
	assert.Equal(t, "owl", job.Prompt)
	assert.Equal(t, structs.StyleAbstract, job.Style)
}

func TestErrorsMapped(t *testing.T) {
	cases := []struct {
		Name   string
		Code   int
		Expect error
	}{
		{"NotFound", http.StatusNotFound, errors.ErrNotFound},
		{"Conflict", http.StatusConflict, errors.ErrAlreadyExists},
		{"BadRequest", http.StatusBadRequest, errors.ErrInvalidArg},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", c.Code)
			}))
			defer srv.Close()

			cl, err := New(srv.URL)
			assert.Nil(t, err)

			_, err = cl.Job(context.Background(), "abc")

			assert.ErrorIs(t, err, c.Expect)
		})
	}
}

func TestWaitForJob(t *testing.T) {
	var calls int32
	url := "https://picsum.photos/seed/logo4/512/512"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/abc", r.URL.Path)

		job := &structs.Job{ID: "abc", Status: structs.PROCESSING}
		if atomic.AddInt32(&calls, 1) >= 3 {
			job.Status = structs.DONE
			job.ImageURL = &url
		}
		json.NewEncoder(w).Encode(job)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	assert.Nil(t, err)
	c.PollInterval = time.Millisecond

	job, err := c.WaitForJob(context.Background(), "abc")

	assert.Nil(t, err)
	assert.Equal(t, structs.DONE, job.Status)
	assert.Equal(t, url, *job.ImageURL)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWaitForJobCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(&structs.Job{ID: "abc", Status: structs.PROCESSING})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	assert.Nil(t, err)
	c.PollInterval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.WaitForJob(ctx, "abc")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
